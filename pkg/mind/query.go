package mind

import "fmt"

// Hint is the result of a query: the closest retained pattern and a
// derived confidence. Confidence is the product of three signals:
//
//	similarity      how close the query is to the matched invariant
//	stability       1 - plasticity
//	weight factor   weight / (weight + 1)
//
// A plastic system expresses low confidence regardless of similarity,
// and an unreinforced invariant never yields high confidence. A query
// pointing away from everything retained produces a negative
// confidence ("anti-confidence"), which is intentional.
type Hint struct {
	// Vector is a read-only view of the matched slot's vector. It is
	// invalidated by any subsequent mutation of the state. Nil when the
	// state holds no invariants.
	Vector []float32

	// Dim is the vector dimension, 0 for an empty state.
	Dim int

	// Confidence is the derived confidence scalar.
	Confidence float32
}

// Query finds the retained invariant closest to the query vector and
// derives a confidence for it. It never mutates the state. Querying an
// empty state is not an error: it returns a Hint with no vector and
// confidence exactly 0.
func (s *State) Query(query []float32) (Hint, error) {
	if s == nil {
		return Hint{}, ErrInvalidHandle
	}
	if len(query) != s.rt.dim {
		return Hint{}, fmt.Errorf("%w: query dim %d, want %d", ErrInvalidInput, len(query), s.rt.dim)
	}

	bestIdx, bestSim := s.bestMatch(query)
	if bestIdx < 0 {
		return Hint{}, nil
	}

	stability := 1 - s.plasticity
	weight := s.weights[bestIdx]
	weightFactor := weight / (weight + 1)

	return Hint{
		Vector:     s.slot(bestIdx),
		Dim:        s.rt.dim,
		Confidence: bestSim * stability * weightFactor,
	}, nil
}
