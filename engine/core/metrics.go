package core

import "time"

// AvgCount is the size of the rolling window used to average per-draw
// update-group time, mirroring the teacher's MetricsState frame-time
// window (engine/core/metrics.go's AVG_COUNT).
const AvgCount uint8 = 30

// DrawMetrics tracks, per GPU channel, how long update-group processing and
// host-API submission take across the rolling window. spec.md §1 calls out
// "fast enough to sustain interactive frame rates" as the whole point of
// the incremental-update design; this is how a caller observes whether
// that's actually happening.
type DrawMetrics struct {
	counter    uint8
	samplesUs  [AvgCount]float64
	avgUs      float64
	draws      int64
	hostCalls  int64
	lastReset  time.Time
	drawsPerS  float64
}

func NewDrawMetrics() *DrawMetrics {
	return &DrawMetrics{lastReset: time.Now()}
}

// RecordDraw folds in the wall-clock duration of one Draw Preamble pass
// (spec.md §4.3) plus how many host-API calls it issued.
func (m *DrawMetrics) RecordDraw(elapsed time.Duration, hostCalls int) {
	us := float64(elapsed.Microseconds())
	m.samplesUs[m.counter] = us
	if m.counter == AvgCount-1 {
		var total float64
		for _, s := range m.samplesUs {
			total += s
		}
		m.avgUs = total / float64(AvgCount)
	}
	m.counter = (m.counter + 1) % AvgCount

	m.draws++
	m.hostCalls += int64(hostCalls)

	if elapsedSinceReset := time.Since(m.lastReset); elapsedSinceReset >= time.Second {
		m.drawsPerS = float64(m.draws) / elapsedSinceReset.Seconds()
		m.draws = 0
		m.hostCalls = 0
		m.lastReset = time.Now()
	}
}

// AverageDrawMicros returns the rolling average draw-preamble duration.
func (m *DrawMetrics) AverageDrawMicros() float64 {
	return m.avgUs
}

// DrawsPerSecond returns the most recently measured draw rate.
func (m *DrawMetrics) DrawsPerSecond() float64 {
	return m.drawsPerS
}
