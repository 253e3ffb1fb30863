package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/em"
	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/pairwise"
)

func TestPairs_CountsAcrossRuns(t *testing.T) {
	p := New("test", prometheus.NewRegistry())

	p.Pairs(0, 10)
	p.Pairs(4, 10)
	p.Pairs(8, 10)
	p.Pairs(6, 10) // stale
	p.Pairs(10, 10)
	assert.Equal(t, 10.0, testutil.ToFloat64(p.PairsSolved))
	assert.Equal(t, 10.0, testutil.ToFloat64(p.PairsDone))

	p.Pairs(0, 3)
	p.Pairs(3, 3)
	assert.Equal(t, 13.0, testutil.ToFloat64(p.PairsSolved))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.PairsTotal))
}

func TestObserveStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New("test", reg)

	p.ObserveStage(em.StageSeedCost, time.Millisecond)
	p.ObserveStage(em.StageUpdateCost, time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.RoundsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(p.StageDuration))
}

func TestProgress_WiredIntoEngine(t *testing.T) {
	p := New("test", prometheus.NewRegistry())
	vol, err := matrix.NewDenseFrom(4, 2, []float64{
		1, 0,
		0, 1,
		0.5, 0.5,
		1, 0,
	})
	require.NoError(t, err)
	cost, err := matrix.NewDenseFrom(2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, err)

	_, err = pairwise.NewEngine(pairwise.WithProgress(p), pairwise.WithProgressEvery(1), pairwise.WithConcurrency(3)).
		Compute(context.Background(), vol, cost)
	require.NoError(t, err)
	assert.Equal(t, 6.0, testutil.ToFloat64(p.PairsSolved))
	assert.Equal(t, 6.0, testutil.ToFloat64(p.PairsTotal))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New("bm", reg)
	p.Pairs(0, 1)
	p.Pairs(1, 1)

	path := filepath.Join(t.TempDir(), "barmetric.prom")
	require.NoError(t, WriteTextfile(path, reg))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "bm_emd_pairs_solved_total 1")

	assert.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), reg))
}
