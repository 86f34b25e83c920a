package tracktable

import (
	"runtime"

	"github.com/sandialabs/tracktable-sub003/assemble"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	concurrency      int
	sampleCount      int
	assemblerOptions []func(*assemble.Options)
}

// Option configures Pipeline construction.
type Option func(*options)

// WithLogger configures the pipeline's logger.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithConcurrency bounds the number of goroutines used for parallel
// feature extraction. Values < 1 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.concurrency = n
	}
}

// WithSampleCount configures the distance-geometry sample count used by
// ExtractFeatures. The default is 5.
func WithSampleCount(n int) Option {
	return func(o *options) {
		o.sampleCount = n
	}
}

// WithAssemblerOptions forwards configuration to the pipeline's assembler.
func WithAssemblerOptions(optFns ...func(*assemble.Options)) Option {
	return func(o *options) {
		o.assemblerOptions = append(o.assemblerOptions, optFns...)
	}
}
