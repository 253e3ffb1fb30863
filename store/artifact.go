package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/registry"
)

const (
	registryName = "registry.json"
	matrixName   = "matrix.bin"
	manifestName = "manifest.json"
)

// Manifest describes one stored artifact.
type Manifest struct {
	Analytics Analytics `json:"analytics"`
	Version   string    `json:"version"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveRegistry writes reg as a JSON array of {id, name}.
func SaveRegistry(ctx context.Context, s BlobStore, a Analytics, version string, reg *registry.Registry) error {
	if err := checkSegments(string(a), version); err != nil {
		return err
	}
	blob, err := json.Marshal(reg.Entries())
	if err != nil {
		return fmt.Errorf("store: marshal registry: %w", err)
	}

	return s.Put(ctx, Key(a, version, registryName), blob)
}

// LoadRegistry reads a registry written by SaveRegistry.
func LoadRegistry(ctx context.Context, s BlobStore, a Analytics, version string) (*registry.Registry, error) {
	blob, err := get(ctx, s, Key(a, version, registryName))
	if err != nil {
		return nil, err
	}
	var entries []registry.Entry
	if err = json.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("store: unmarshal registry: %w: %w", matrix.ErrCorruptBlob, err)
	}

	return registry.New(entries)
}

// SaveMatrix writes m as a flat float64 blob.
func SaveMatrix(ctx context.Context, s BlobStore, a Analytics, version string, m *matrix.Dense) error {
	if err := checkSegments(string(a), version); err != nil {
		return err
	}

	return s.Put(ctx, Key(a, version, matrixName), matrix.Encode(m))
}

// LoadMatrix reads a rows×cols matrix written by SaveMatrix.
// Errors: ErrNotFound, matrix.ErrCorruptBlob (length mismatch).
func LoadMatrix(ctx context.Context, s BlobStore, a Analytics, version string, rows, cols int) (*matrix.Dense, error) {
	blob, err := get(ctx, s, Key(a, version, matrixName))
	if err != nil {
		return nil, err
	}

	return matrix.Decode(rows, cols, blob)
}

// SaveArtifact writes the registry, the square matrix it indexes and a
// manifest, then moves the LATEST pointer to version.
func SaveArtifact(ctx context.Context, s BlobStore, a Analytics, version string, reg *registry.Registry, m *matrix.Dense) error {
	if err := reg.Validate(m.Rows()); err != nil {
		return fmt.Errorf("store: SaveArtifact: %w", err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return fmt.Errorf("store: SaveArtifact: %w", err)
	}
	if err := SaveRegistry(ctx, s, a, version, reg); err != nil {
		return err
	}
	if err := SaveMatrix(ctx, s, a, version, m); err != nil {
		return err
	}
	man, err := json.Marshal(Manifest{
		Analytics: a,
		Version:   version,
		Rows:      m.Rows(),
		Cols:      m.Cols(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("store: marshal manifest: %w", err)
	}
	if err = s.Put(ctx, Key(a, version, manifestName), man); err != nil {
		return err
	}

	return s.Put(ctx, latestKey(a), []byte(version))
}

// LoadArtifact reads a (Registry, Matrix) pair. The matrix shape comes from
// the registry and must agree with the manifest.
// Errors: ErrNotFound, matrix.ErrCorruptBlob.
func LoadArtifact(ctx context.Context, s BlobStore, a Analytics, version string) (*registry.Registry, *matrix.Dense, error) {
	reg, err := LoadRegistry(ctx, s, a, version)
	if err != nil {
		return nil, nil, err
	}
	blob, err := get(ctx, s, Key(a, version, manifestName))
	if err != nil {
		return nil, nil, err
	}
	var man Manifest
	if err = json.Unmarshal(blob, &man); err != nil {
		return nil, nil, fmt.Errorf("store: unmarshal manifest: %w: %w", matrix.ErrCorruptBlob, err)
	}
	n := reg.Len()
	if man.Rows != n || man.Cols != n {
		return nil, nil, fmt.Errorf("store: manifest %dx%d, registry %d: %w", man.Rows, man.Cols, n, matrix.ErrCorruptBlob)
	}
	m, err := LoadMatrix(ctx, s, a, version, n, n)
	if err != nil {
		return nil, nil, err
	}

	return reg, m, nil
}

// Latest returns the version most recently saved with SaveArtifact.
func Latest(ctx context.Context, s BlobStore, a Analytics) (string, error) {
	blob, err := get(ctx, s, latestKey(a))
	if err != nil {
		return "", err
	}

	return string(blob), nil
}

func get(ctx context.Context, s BlobStore, key string) ([]byte, error) {
	blob, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("store: %s: %w", key, ErrNotFound)
	}

	return blob, nil
}
