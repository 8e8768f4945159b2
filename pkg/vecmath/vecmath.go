// Package vecmath provides the float32 vector primitives used by the
// mind runtime: dot product, L2 norm, cosine similarity, and linear
// interpolation. All functions are pure and safe for concurrent readers.
//
// Accumulation is sequential float32, without widening to float64, so
// results are reproducible bit-for-bit for a given input sequence.
package vecmath

import "math"

// Dot returns the inner product of a and b. Both slices must have the
// same length; the caller guarantees this.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// If either vector has an exactly zero squared norm the result is 0:
// zero vectors are treated as maximally dissimilar to everything,
// including each other.
func Cosine(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// Lerp writes a*(1-t) + b*t element-wise into dst. It performs no
// clamping; callers must supply t in [0, 1]. dst may alias a or b.
func Lerp(dst, a, b []float32, t float32) {
	oneMinusT := 1 - t
	for i := range dst {
		dst[i] = a[i]*oneMinusT + b[i]*t
	}
}
