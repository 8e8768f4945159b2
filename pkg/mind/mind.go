// Package mind implements a bounded experience-accumulation runtime.
//
// A State ingests fixed-dimension vectors and retains up to a fixed
// number of representative patterns ("invariants"). A scalar plasticity
// in [0.05, 1.0] governs how strongly new input overwrites a matched
// pattern: repetition crystallizes the state (plasticity decays),
// novelty keeps it open (plasticity recovers). Queries return hints
// whose confidence is derived from similarity, stability, and
// reinforcement weight; it is never asserted.
//
// The core is single-threaded and deterministic: identical update
// sequences produce bit-identical states. Callers that share one State
// across goroutines must serialize access themselves (the hub package
// does exactly that). Independent States need no coordination.
package mind

import "errors"

// Version is the semantic version of the runtime core and of the
// persistence format's compatibility line.
const Version = "0.1.0"

// Frozen v0.1 semantics. Changing any of these changes what every
// previously persisted state means.
const (
	// Epsilon is the plasticity floor. Plasticity never drops below
	// this value, so the system stays somewhat malleable forever.
	Epsilon float32 = 0.05

	// SimilarityThreshold decides reinforcement: a best match with
	// cosine similarity strictly above it is reinforced rather than
	// stored as a new invariant.
	SimilarityThreshold float32 = 0.85

	// DecayRate multiplies plasticity on each reinforcement.
	DecayRate float32 = 0.995

	// RecoveryRate multiplies plasticity on each novelty event.
	RecoveryRate float32 = 1.0005
)

// Sentinel errors for the mind runtime.
var (
	ErrInvalidHandle  = errors.New("mind: invalid runtime or state handle")
	ErrInvalidInput   = errors.New("mind: invalid input")
	ErrInvalidConfig  = errors.New("mind: invalid configuration")
	ErrBadMagic       = errors.New("mind: not a mind state snapshot")
	ErrBadVersion     = errors.New("mind: unsupported snapshot version")
	ErrConfigMismatch = errors.New("mind: snapshot configuration mismatch")
	ErrTruncated      = errors.New("mind: truncated snapshot")
)
