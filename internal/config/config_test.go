package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5, cfg.KNN.K)
	assert.Equal(t, 1.0, cfg.Update.TargetMedian)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Zero(t, cfg.Update.PriorBlend)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barmetric.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
knn:
  k: 8
  beta: 0.5
pairwise:
  concurrency: 4
store:
  backend: badger
  dir: /tmp/bm
`), 0o600))

	t.Setenv("BARMETRIC_KNN_K", "3")
	t.Setenv("BARMETRIC_UPDATE_TARGET_MEDIAN", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.KNN.K, "env beats file")
	assert.Equal(t, 0.5, cfg.KNN.Beta)
	assert.Equal(t, 4, cfg.Pairwise.Concurrency)
	assert.Equal(t, 2.5, cfg.Update.TargetMedian)
	assert.Equal(t, "badger", cfg.Store.Backend)
	assert.Equal(t, "/tmp/bm", cfg.Store.Dir)
	assert.True(t, cfg.KNN.Symmetrize, "defaults survive partial files")
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yml")
	require.NoError(t, os.WriteFile(path, []byte("learn:\n  rounds: 7\n"), 0o600))
	t.Setenv(PathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Learn.Rounds)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("BARMETRIC_KNN_K", "0")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Store.Backend = "s3"
	cfg.Update.PriorBlend = 1.5
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "Config.Store.Backend")
	assert.Contains(t, err.Error(), "Config.Update.PriorBlend")

	cfg = Default()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "knn.k", envTransformFunc("BARMETRIC_KNN_K"))
	assert.Equal(t, "knn.min_flow_fraction", envTransformFunc("BARMETRIC_KNN_MIN_FLOW_FRACTION"))
	assert.Equal(t, "", envTransformFunc("BARMETRIC_CONFIG"))
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Volume.Normalize = true
	cfg.Volume.Sparse = true
	cfg.KNN.TopFlows = 4

	assert.Len(t, cfg.VolumeOptions(), 3)
	assert.Len(t, cfg.TreeOptions(), 1)
	assert.Equal(t, 4, cfg.AggregateConfig().TopFlows)
	assert.Equal(t, cfg.Update.Alpha, cfg.UpdateConfig().Alpha)
	assert.Nil(t, cfg.UpdateConfig().Prior)
	assert.Equal(t, "info", cfg.Logging().Level)
}
