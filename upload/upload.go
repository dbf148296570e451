// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package upload copies a finished run's output files to a Google
// Cloud Storage bucket, the same way storage/appengine's app.go wires
// a gcs.FS from a GCS_BUCKET environment variable -- except here the
// bucket is an explicit Uploader field rather than an AppEngine
// request-scoped value, since cmd/faldisco is a batch CLI, not a
// server.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Uploader copies local files into a GCS bucket, under a common
// prefix, once an engine run has written its output locally.
type Uploader struct {
	Bucket string
	Prefix string

	client *storage.Client
}

// NewUploader returns an Uploader backed by a GCS client. credFile, if
// non-empty, is passed as option.WithCredentialsFile; otherwise the
// client falls back to application-default credentials, mirroring how
// google.golang.org/api clients resolve credentials when no explicit
// option is given.
func NewUploader(ctx context.Context, bucket, prefix, credFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("upload: creating GCS client: %w", err)
	}
	return &Uploader{Bucket: bucket, Prefix: prefix, client: client}, nil
}

// Close releases the underlying GCS client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// UploadFile copies the local file at path to object name (joined
// with u.Prefix) in u.Bucket.
func (u *Uploader) UploadFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("upload: opening %s: %w", path, err)
	}
	defer f.Close()

	object := objectName(u.Prefix, path)

	w := u.client.Bucket(u.Bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("upload: writing %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload: closing %s: %w", object, err)
	}
	return nil
}

// objectName returns the GCS object key for a local file path, joined
// under prefix if one is set.
func objectName(prefix, path string) string {
	name := filepath.Base(path)
	if prefix != "" {
		name = prefix + "/" + name
	}
	return name
}

// UploadAll copies every path in paths to u.Bucket, stopping at the
// first error.
func (u *Uploader) UploadAll(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := u.UploadFile(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
