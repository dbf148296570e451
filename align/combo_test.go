// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"reflect"
	"testing"
)

func TestCombinationSetAddAndOrder(t *testing.T) {
	c := NewCombinationSet()
	c.Add("r1", "t1")
	c.Add("r1", "t2")
	c.Add("r2", "t1")

	if got, want := c.Refs(), []string{"r1", "r2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Refs() = %v, want %v", got, want)
	}
	if got, want := c.Targets("r1"), []string{"t1", "t2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Targets(r1) = %v, want %v", got, want)
	}
	if c.Size() != 3 {
		t.Errorf("Size() = %d, want 3", c.Size())
	}
}

func TestCombinationSetRemoveDropsEmptyRef(t *testing.T) {
	c := NewCombinationSet()
	c.Add("r1", "t1")
	c.Remove("r1", "t1")

	if c.Exists("r1", "t1") {
		t.Error("pair should be gone after Remove")
	}
	if len(c.Refs()) != 0 {
		t.Errorf("Refs() = %v, want empty once the only target is removed", c.Refs())
	}
}

func TestCombinationSetIncrement(t *testing.T) {
	c := NewCombinationSet()
	c.Increment("r1", "t1", 2)
	c.Increment("r1", "t1", 3)
	if got := c.Get("r1", "t1"); got != 5 {
		t.Errorf("Get(r1, t1) = %v, want 5", got)
	}
}

func TestCoOccurrenceTableCounts(t *testing.T) {
	co := NewCoOccurrenceTable()
	co.Add("r", "t", "a", "x")
	co.Add("r", "t", "a", "x")
	co.Add("r", "t", "a", "y")
	co.Add("r", "t", "b", "z")

	if got := co.Count("r", "t", "a", "x"); got != 2 {
		t.Errorf("Count(a,x) = %d, want 2", got)
	}
	if got, want := co.RefValues("r", "t"), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RefValues = %v, want %v", got, want)
	}
	if got, want := co.TargetValues("r", "t", "a"), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TargetValues(a) = %v, want %v", got, want)
	}
}

func TestExactCounter(t *testing.T) {
	e := NewExactCounter()
	e.Increment("r", "t", 1)
	e.Increment("r", "t", 1)
	if got := e.Count("r", "t"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}
