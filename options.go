package engram

type options struct {
	version   uint32
	registry  *Registry
	logger    *Logger
	metrics   MetricsCollector
	capacity  int
	maxLength uint64
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures a Codec.
type Option func(*options)

// WithVersion sets the format version handed to every Serialize and
// Deserialize call.
func WithVersion(v uint32) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithRegistry sets the registry used for polymorphic values.
//
// If nil is passed, DefaultRegistry is used. Components loaded as plug-ins
// should be handed the host's registry through this option rather than
// building their own.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified about decode failures.
// If nil is passed, a no-op collector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithCapacity preallocates room for n bytes of output.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxLength bounds every decoded length prefix (text, slices, maps and
// blobs). Prefixes above n fail with ErrLengthExceeded. Zero means no bound
// beyond the size of the stream itself.
func WithMaxLength(n uint64) Option {
	return func(o *options) {
		o.maxLength = n
	}
}
