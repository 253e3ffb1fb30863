// Package metrics exposes learning progress as prometheus metrics.
//
// Metrics are registered on a caller-supplied registry so that tests and
// repeated CLI invocations never collide on the default registerer.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/barmetric/em"
	"github.com/katalvlaran/barmetric/pairwise"
)

// Progress records pairwise progress and EM stage timings.
// It implements pairwise.ProgressSink and em.StageObserver and is safe for
// concurrent use.
type Progress struct {
	PairsSolved   prometheus.Counter
	PairsDone     prometheus.Gauge
	PairsTotal    prometheus.Gauge
	StageDuration *prometheus.HistogramVec
	RoundsTotal   prometheus.Counter

	mu   sync.Mutex
	last int64
}

var (
	_ pairwise.ProgressSink = (*Progress)(nil)
	_ em.StageObserver      = (*Progress)(nil)
)

// New registers the progress metrics under namespace on reg.
func New(namespace string, reg prometheus.Registerer) *Progress {
	f := promauto.With(reg)

	return &Progress{
		PairsSolved: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emd_pairs_solved_total",
			Help:      "Total number of recipe pairs solved by the EMD engine",
		}),
		PairsDone: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "emd_pairs_done",
			Help:      "Pairs completed in the current pairwise run",
		}),
		PairsTotal: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "emd_pairs",
			Help:      "Pairs scheduled in the current pairwise run",
		}),
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "em_stage_duration_seconds",
				Help:      "Duration of EM round stages in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
			},
			[]string{"stage"},
		),
		RoundsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "em_rounds_total",
			Help:      "Total number of completed EM rounds",
		}),
	}
}

// Pairs implements pairwise.ProgressSink. Pairs(0, total) opens a run;
// stale reports from slower workers are dropped.
func (p *Progress) Pairs(done, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if done == 0 {
		p.last = 0
	}
	if done < p.last {
		return
	}
	if delta := done - p.last; delta > 0 {
		p.PairsSolved.Add(float64(delta))
	}
	p.last = done
	p.PairsDone.Set(float64(done))
	p.PairsTotal.Set(float64(total))
}

// ObserveStage implements em.StageObserver. The update stage closes a round.
func (p *Progress) ObserveStage(stage em.Stage, elapsed time.Duration) {
	p.StageDuration.WithLabelValues(stage.String()).Observe(elapsed.Seconds())
	if stage == em.StageUpdateCost {
		p.RoundsTotal.Inc()
	}
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
