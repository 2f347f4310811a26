package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler keeps timing statistics for named sections of a cook.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a profiler that keeps the last maxSamples timings of
// each section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples <= 0 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section. Call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores one timing.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIndex] = elapsed
	}
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// Get returns a copy of the measurement for a named section.
func (p *Profiler) Get(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	return m.clone(), true
}

// All returns copies of every measurement sorted by name.
func (p *Profiler) All() []Measurement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]Measurement, 0, len(p.measurements))
	for _, m := range p.measurements {
		result = append(result, m.clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report renders every measurement. budget, when non-zero, is the time one
// frame may take; the report then includes the average load against it.
func (p *Profiler) Report(budget time.Duration) string {
	all := p.All()
	if len(all) == 0 {
		return "No measurements recorded\n"
	}

	var sb strings.Builder
	for _, m := range all {
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p99=%v",
			m.Name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
		if budget > 0 {
			fmt.Fprintf(&sb, " load=%.3f%%", m.Load(budget))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Measurement) clone() Measurement {
	c := *m
	c.samples = append([]time.Duration(nil), m.samples...)
	return c
}

// Average returns the mean timing.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the retained timings.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * p / 100.0)
	return sorted[index]
}

// Load returns the average timing as a percentage of budget.
func (m Measurement) Load(budget time.Duration) float64 {
	if budget <= 0 {
		return 0
	}
	return float64(m.Average()) / float64(budget) * 100.0
}
