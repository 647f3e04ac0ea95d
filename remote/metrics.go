package remote

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// SendTimer records blocking-send latencies — the time a sendXBlock call
// spends inside Future.Get — as an optional observability hook attached via
// WithSendTimer. Nothing in this package requires one; a nil *SendTimer is
// never dereferenced, only checked.
//
// Grounded on the teacher's util.TtyHist, pared down to the percentiles this
// domain cares about and stripped of TtyHist's periodic-report-and-reset
// loop, which assumes a fixed sample-count cadence this package has no
// occasion to impose.
type SendTimer struct {
	mu  sync.Mutex
	hdr *hdrhistogram.Histogram
}

// NewSendTimer builds a SendTimer recording latencies between min and max
// (inclusive) at the given number of significant decimal digits of
// precision, matching hdrhistogram.New's own parameters.
func NewSendTimer(min, max time.Duration, precision int) *SendTimer {
	return &SendTimer{
		hdr: hdrhistogram.New(min.Nanoseconds(), max.Nanoseconds(), precision),
	}
}

// Record adds one blocking-send latency sample.
func (t *SendTimer) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.hdr.RecordValue(d.Nanoseconds())
}

// ValueAtPercentile returns the latency at the given percentile (0-100).
func (t *SendTimer) ValueAtPercentile(pct float64) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Duration(t.hdr.ValueAtPercentile(pct))
}

// Report writes a one-line min/p50/p95/p99/max summary to w.
func (t *SendTimer) Report(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(w, "blocking-send latency: min=%s p50=%s p95=%s p99=%s max=%s n=%d\n",
		time.Duration(t.hdr.Min()),
		time.Duration(t.hdr.ValueAtPercentile(50)),
		time.Duration(t.hdr.ValueAtPercentile(95)),
		time.Duration(t.hdr.ValueAtPercentile(99)),
		time.Duration(t.hdr.Max()),
		t.hdr.TotalCount(),
	)
}

// Reset clears all recorded samples.
func (t *SendTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hdr.Reset()
}
