package mind

import "fmt"

// Config holds the immutable parameters of a Runtime.
type Config struct {
	// EmbeddingDim is the dimension of every vector the runtime handles.
	EmbeddingDim int `json:"embedding_dim"`

	// MaxSlots is the maximum number of retained invariants per state.
	MaxSlots int `json:"max_slots"`
}

// Runtime holds validated configuration. It carries no mutable state;
// many States may share one Runtime.
type Runtime struct {
	dim      int
	maxSlots int
}

// NewRuntime validates cfg and returns a Runtime.
func NewRuntime(cfg Config) (*Runtime, error) {
	if cfg.EmbeddingDim <= 0 {
		return nil, fmt.Errorf("%w: embedding dim must be > 0, got %d", ErrInvalidConfig, cfg.EmbeddingDim)
	}
	if cfg.MaxSlots <= 0 {
		return nil, fmt.Errorf("%w: max slots must be > 0, got %d", ErrInvalidConfig, cfg.MaxSlots)
	}
	return &Runtime{dim: cfg.EmbeddingDim, maxSlots: cfg.MaxSlots}, nil
}

// Dim returns the embedding dimension.
func (r *Runtime) Dim() int { return r.dim }

// MaxSlots returns the per-state slot capacity.
func (r *Runtime) MaxSlots() int { return r.maxSlots }

// Config returns the runtime configuration.
func (r *Runtime) Config() Config {
	return Config{EmbeddingDim: r.dim, MaxSlots: r.maxSlots}
}

// NewState allocates a fresh State bound to this runtime. The slot
// arena is a single contiguous allocation sized dim x maxSlots; no
// further allocation happens over the state's lifetime.
func (r *Runtime) NewState() (*State, error) {
	if r == nil {
		return nil, ErrInvalidHandle
	}
	return &State{
		rt:         r,
		vectors:    make([]float32, r.dim*r.maxSlots),
		weights:    make([]float32, r.maxSlots),
		plasticity: 1.0,
		plastPrev:  1.0,
	}, nil
}
