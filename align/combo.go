// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// CombinationSet is a two-level (ref field -> target field -> payload)
// mapping with deterministic, insertion-ordered iteration. It tracks
// candidate (rf, tf) pairs for one of the four combination kinds
// described in spec.md §3 (alignment, exact match, sparse alignment,
// alignment-exact-match).
type CombinationSet struct {
	payload     map[string]map[string]float64
	refOrder    []string
	targetOrder map[string][]string
}

// NewCombinationSet returns an empty CombinationSet.
func NewCombinationSet() *CombinationSet {
	return &CombinationSet{
		payload:     make(map[string]map[string]float64),
		targetOrder: make(map[string][]string),
	}
}

// Add inserts (ref, target) with a zero payload if it is not already
// present; it is a no-op if the pair already exists.
func (c *CombinationSet) Add(ref, target string) {
	if c.Exists(ref, target) {
		return
	}
	c.Set(ref, target, 0)
}

// Set assigns value to (ref, target), inserting the pair if needed.
func (c *CombinationSet) Set(ref, target string, value float64) {
	targets, ok := c.payload[ref]
	if !ok {
		targets = make(map[string]float64)
		c.payload[ref] = targets
		c.refOrder = append(c.refOrder, ref)
	}
	if _, exists := targets[target]; !exists {
		c.targetOrder[ref] = append(c.targetOrder[ref], target)
	}
	targets[target] = value
}

// Increment adds delta to the payload of (ref, target), inserting the
// pair with payload delta if it did not already exist.
func (c *CombinationSet) Increment(ref, target string, delta float64) {
	c.Set(ref, target, c.Get(ref, target)+delta)
}

// Remove deletes (ref, target) from the set, if present.
func (c *CombinationSet) Remove(ref, target string) {
	targets, ok := c.payload[ref]
	if !ok {
		return
	}
	if _, exists := targets[target]; !exists {
		return
	}
	delete(targets, target)
	order := c.targetOrder[ref]
	for i, t := range order {
		if t == target {
			c.targetOrder[ref] = append(order[:i], order[i+1:]...)
			break
		}
	}
	if len(targets) == 0 {
		delete(c.payload, ref)
		delete(c.targetOrder, ref)
		for i, r := range c.refOrder {
			if r == ref {
				c.refOrder = append(c.refOrder[:i], c.refOrder[i+1:]...)
				break
			}
		}
	}
}

// Get returns the payload of (ref, target), or 0 if absent.
func (c *CombinationSet) Get(ref, target string) float64 {
	return c.payload[ref][target]
}

// Exists reports whether (ref, target) is present.
func (c *CombinationSet) Exists(ref, target string) bool {
	targets, ok := c.payload[ref]
	if !ok {
		return false
	}
	_, ok = targets[target]
	return ok
}

// Refs returns the reference fields with at least one target, in
// insertion order.
func (c *CombinationSet) Refs() []string {
	return append([]string(nil), c.refOrder...)
}

// Targets returns the target fields paired with ref, in insertion
// order.
func (c *CombinationSet) Targets(ref string) []string {
	return append([]string(nil), c.targetOrder[ref]...)
}

// Size returns the total number of (ref, target) pairs in the set.
func (c *CombinationSet) Size() int {
	n := 0
	for _, targets := range c.payload {
		n += len(targets)
	}
	return n
}
