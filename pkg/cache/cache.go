// Package cache stores rendered artifacts keyed by their inputs.
//
// Three backends implement [Cache]:
//   - [NullCache]: stores nothing, used with --no-cache
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: shared cache for the render server
//
// Keys are built by a [Keyer] so the same inputs always map to the same key
// regardless of which backend holds the data.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// ArtifactKeyOpts holds every render setting that changes the output bytes.
type ArtifactKeyOpts struct {
	Format         string `json:"format"`
	Style          string `json:"style"`
	SizeRatio      string `json:"size_ratio"`
	FrontColor     string `json:"front,omitempty"`
	FillColor      string `json:"fill,omitempty"`
	Background     string `json:"background,omitempty"`
	EyeColor       string `json:"eye,omitempty"`
	EyeCenterColor string `json:"eye_center,omitempty"`
	EyeStyle       string `json:"eye_style,omitempty"`
	PathMode       bool   `json:"path_mode,omitempty"`
	Scale          int    `json:"scale,omitempty"`
	Seed           uint64 `json:"seed,omitempty"`
	PixelUnits     bool   `json:"px,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// MatrixKey identifies the encoded grid of text at an error correction level.
	MatrixKey(text, level string) string

	// ArtifactKey identifies one rendered output of the grid with digest gridHash.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) MatrixKey(text, level string) string {
	return hashKey("matrix", text, level)
}

func (DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", gridHash, opts)
}

// Default entry lifetimes.
const (
	TTLMatrix   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
