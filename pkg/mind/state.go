package mind

import (
	"fmt"

	"github.com/mindcore/mindcore/pkg/vecmath"
)

// UpdateOutcome reports which path an update took.
type UpdateOutcome int

const (
	// OutcomeReinforced means the input matched an existing invariant
	// and was folded into it.
	OutcomeReinforced UpdateOutcome = iota

	// OutcomeCreated means the input was stored as a new invariant.
	OutcomeCreated

	// OutcomeIgnored means memory was full and no invariant matched;
	// the input was discarded but still counted as a novelty event.
	OutcomeIgnored
)

// String returns the outcome label used in logs and metrics.
func (o UpdateOutcome) String() string {
	switch o {
	case OutcomeReinforced:
		return "reinforced"
	case OutcomeCreated:
		return "created"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// State is one unit of accumulated experience. All slot vectors live in
// a single arena indexed by slot number; only the first count slots are
// meaningful. A State is bound to its Runtime's dimension and capacity
// for life.
type State struct {
	rt *Runtime

	vectors []float32 // arena, dim*maxSlots
	weights []float32 // per-slot reinforcement weight
	count   int       // occupied slots

	plasticity float32
	plastPrev  float32
	velocity   float32
	age        float32
	lastReinf  float32 // age at last reinforcement

	totalUpdates        int32
	totalReinforcements int32
}

// slot returns the backing vector of slot i as a view into the arena.
func (s *State) slot(i int) []float32 {
	d := s.rt.dim
	return s.vectors[i*d : (i+1)*d]
}

// SlotCount returns the number of occupied slots.
func (s *State) SlotCount() int {
	if s == nil {
		return 0
	}
	return s.count
}

// SlotVector returns a read-only view of slot i's vector. The view is
// invalidated by any subsequent Update, Reset, or Decode.
func (s *State) SlotVector(i int) []float32 {
	if s == nil || i < 0 || i >= s.count {
		return nil
	}
	return s.slot(i)
}

// SlotWeight returns the reinforcement weight of slot i, or 0 if the
// slot is unoccupied.
func (s *State) SlotWeight(i int) float32 {
	if s == nil || i < 0 || i >= s.count {
		return 0
	}
	return s.weights[i]
}

// Runtime returns the runtime this state is bound to.
func (s *State) Runtime() *Runtime {
	if s == nil {
		return nil
	}
	return s.rt
}

// Reset returns the state to its construction-time values without
// reallocating the slot arena.
func (s *State) Reset() {
	if s == nil {
		return
	}
	clear(s.vectors)
	clear(s.weights)
	s.count = 0
	s.plasticity = 1.0
	s.plastPrev = 1.0
	s.velocity = 0
	s.age = 0
	s.lastReinf = 0
	s.totalUpdates = 0
	s.totalReinforcements = 0
}

// bestMatch scans the occupied slots for the one most similar to v.
// The first occupied slot seeds the scan and later slots must beat it
// strictly, so ties resolve to the earliest slot in storage order.
// Returns (-1, 0) on an empty store.
func (s *State) bestMatch(v []float32) (int, float32) {
	bestIdx := -1
	var bestSim float32
	for i := 0; i < s.count; i++ {
		sim := vecmath.Cosine(v, s.slot(i))
		if bestIdx < 0 || sim > bestSim {
			bestIdx = i
			bestSim = sim
		}
	}
	return bestIdx, bestSim
}

// Update folds one experience into the state.
//
// The closest existing invariant (by cosine similarity) either absorbs
// the input (similarity above SimilarityThreshold: the slot vector is
// interpolated toward the input weighted by current plasticity, its
// weight grows, plasticity decays) or the input becomes a new invariant
// (plasticity recovers). With memory full and no match the input is
// dropped, but it still counts as a novelty event: plasticity recovers
// and only total_updates advances.
//
// On success age grows by exactly deltaT and velocity is recomputed as
// (previous plasticity - plasticity) / deltaT. On error the state is
// unchanged.
func (s *State) Update(embedding []float32, deltaT float32) (UpdateOutcome, error) {
	if s == nil {
		return 0, ErrInvalidHandle
	}
	if len(embedding) != s.rt.dim {
		return 0, fmt.Errorf("%w: embedding dim %d, want %d", ErrInvalidInput, len(embedding), s.rt.dim)
	}
	if deltaT <= 0 {
		return 0, fmt.Errorf("%w: delta_t must be > 0, got %g", ErrInvalidInput, deltaT)
	}

	s.plastPrev = s.plasticity

	bestIdx, bestSim := s.bestMatch(embedding)

	var outcome UpdateOutcome
	switch {
	case bestIdx >= 0 && bestSim > SimilarityThreshold:
		// Reinforce: move the stored pattern toward the input. At full
		// plasticity the input is adopted wholesale; near the floor the
		// stored pattern barely drifts.
		slot := s.slot(bestIdx)
		vecmath.Lerp(slot, slot, embedding, s.plasticity)
		s.weights[bestIdx] += 1.0
		s.lastReinf = s.age + deltaT
		s.totalReinforcements++
		s.plasticity *= DecayRate
		outcome = OutcomeReinforced

	case s.count < s.rt.maxSlots:
		// Create: retain the raw input as a new invariant.
		copy(s.slot(s.count), embedding)
		s.weights[s.count] = 1.0
		s.count++
		s.plasticity *= RecoveryRate
		outcome = OutcomeCreated

	default:
		// Memory full, nothing matched. The experience is dropped but
		// still treated as a novelty event for plasticity.
		s.plasticity *= RecoveryRate
		outcome = OutcomeIgnored
	}

	if s.plasticity < Epsilon {
		s.plasticity = Epsilon
	}
	if s.plasticity > 1.0 {
		s.plasticity = 1.0
	}

	s.age += deltaT
	s.totalUpdates++
	s.velocity = (s.plastPrev - s.plasticity) / deltaT

	return outcome, nil
}
