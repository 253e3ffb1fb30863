// SPDX-License-Identifier: MIT

// Package store persists learned artifacts through a two-operation blob
// capability (Get/Put). Retries, replication and transport belong to the
// backend; this package only names keys and encodes blobs.
//
// Key layout:
//
//	analytics/<type>/<version>/registry.json  ordered [{id,name}]
//	analytics/<type>/<version>/matrix.bin     row-major float64, little-endian
//	analytics/<type>/<version>/manifest.json  shape and creation time
//	analytics/<type>/LATEST                   most recent version string
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Analytics names an artifact family.
type Analytics string

const (
	// Ingredient artifacts: ingredient registry + ingredient cost matrix.
	Ingredient Analytics = "ingredient"
	// Recipe artifacts: recipe registry + recipe distance matrix.
	Recipe Analytics = "recipe"
)

const keyRoot = "analytics"

// ErrNotFound is returned by Load* helpers when a blob is absent.
var ErrNotFound = errors.New("store: not found")

// ErrBadKey is returned for empty key segments or segments containing '/'.
var ErrBadKey = errors.New("store: invalid key segment")

// BlobStore is the storage capability consumed by this module.
// Get reports ok=false (and a nil error) for a missing key.
type BlobStore interface {
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Put(ctx context.Context, key string, blob []byte) error
}

// Key returns "analytics/<type>/<version>/<name>".
func Key(a Analytics, version, name string) string {
	return strings.Join([]string{keyRoot, string(a), version, name}, "/")
}

func latestKey(a Analytics) string {
	return strings.Join([]string{keyRoot, string(a), "LATEST"}, "/")
}

func checkSegments(segs ...string) error {
	for _, s := range segs {
		if s == "" || strings.Contains(s, "/") {
			return ErrBadKey
		}
	}

	return nil
}

// NewVersion returns a sortable version string: UTC timestamp plus a short
// random suffix, e.g. "20260102T150405Z-1a2b3c4d".
func NewVersion(now time.Time) string {
	return now.UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
}
