package pairwise

// ProgressSink receives the number of completed pairs out of total.
// Every run opens with Pairs(0, total). Reports from parallel workers may
// arrive out of order. It is advisory; a slow sink slows the engine.
type ProgressSink interface {
	Pairs(done, total int64)
}

// NopProgress discards progress reports.
type NopProgress struct{}

// Pairs implements ProgressSink.
func (NopProgress) Pairs(int64, int64) {}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(done, total int64)

// Pairs implements ProgressSink.
func (f ProgressFunc) Pairs(done, total int64) { f(done, total) }
