package bridge

import "github.com/roach88/valu/internal/value"

type config struct {
	ordering value.Ordering
}

// Option configures an Encoder or Decoder.
type Option func(*config)

// WithOrdering sets the ordering of Objects built from structs and struct
// variants. Objects built from Go maps are always value.SortedOrder since
// map iteration order is unspecified.
func WithOrdering(o value.Ordering) Option {
	return func(c *config) { c.ordering = o }
}

func newConfig(opts []Option) config {
	cfg := config{ordering: value.InsertionOrder}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
