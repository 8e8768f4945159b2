package mind

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Snapshot layout, all fields little-endian:
//
//	Header (16 bytes):
//	  magic      uint32  0x4D494E44 ("MIND")
//	  version    uint32  1
//	  dim        int32
//	  max_slots  int32
//
//	State block (32 bytes):
//	  slot_count             int32
//	  plasticity             float32
//	  age                    float32
//	  plasticity_prev        float32
//	  velocity               float32
//	  last_reinforcement_age float32
//	  total_updates          int32
//	  total_reinforcements   int32
//
//	Slots (slot_count records of dim*4+4 bytes):
//	  vector  float32[dim]
//	  weight  float32
//
// Only occupied slots are written; unoccupied capacity is not persisted.
const (
	snapshotMagic   uint32 = 0x4D494E44
	snapshotVersion uint32 = 1

	headerSize     = 16
	stateBlockSize = 32
)

// SnapshotSize returns the encoded size in bytes of a state holding
// slotCount occupied slots at the given dimension.
func SnapshotSize(dim, slotCount int) int {
	return headerSize + stateBlockSize + slotCount*(4*dim+4)
}

type wireWriter struct {
	buf []byte
	off int
}

func (w *wireWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *wireWriter) i32(v int32) { w.u32(uint32(v)) }

func (w *wireWriter) f32(v float32) { w.u32(math.Float32bits(v)) }

type wireReader struct {
	buf []byte
	off int
}

func (r *wireReader) u32() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, 4, r.off, len(r.buf)-r.off)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *wireReader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *wireReader) f32() (float32, error) {
	v, err := r.u32()
	return math.Float32frombits(v), err
}

// Encode serializes the state to the snapshot wire format.
func Encode(s *State) ([]byte, error) {
	if s == nil {
		return nil, ErrInvalidHandle
	}

	w := &wireWriter{buf: make([]byte, SnapshotSize(s.rt.dim, s.count))}

	w.u32(snapshotMagic)
	w.u32(snapshotVersion)
	w.i32(int32(s.rt.dim))
	w.i32(int32(s.rt.maxSlots))

	w.i32(int32(s.count))
	w.f32(s.plasticity)
	w.f32(s.age)
	w.f32(s.plastPrev)
	w.f32(s.velocity)
	w.f32(s.lastReinf)
	w.i32(s.totalUpdates)
	w.i32(s.totalReinforcements)

	for i := 0; i < s.count; i++ {
		for _, f := range s.slot(i) {
			w.f32(f)
		}
		w.f32(s.weights[i])
	}

	return w.buf, nil
}

// Decode restores a state from snapshot bytes, overwriting every scalar
// field and every slot. The snapshot's dimension and capacity must
// match the target state's runtime configuration.
//
// The snapshot is fully parsed into scratch storage before the first
// destructive write, so a failed Decode leaves the target unchanged.
func Decode(s *State, data []byte) error {
	if s == nil {
		return ErrInvalidHandle
	}

	r := &wireReader{buf: data}

	magic, err := r.u32()
	if err != nil {
		return err
	}
	if magic != snapshotMagic {
		return fmt.Errorf("%w: magic %#08x", ErrBadMagic, magic)
	}
	version, err := r.u32()
	if err != nil {
		return err
	}
	if version != snapshotVersion {
		return fmt.Errorf("%w: version %d, supported %d", ErrBadVersion, version, snapshotVersion)
	}
	dim, err := r.i32()
	if err != nil {
		return err
	}
	maxSlots, err := r.i32()
	if err != nil {
		return err
	}
	if int(dim) != s.rt.dim || int(maxSlots) != s.rt.maxSlots {
		return fmt.Errorf("%w: snapshot is %dx%d, state is %dx%d",
			ErrConfigMismatch, dim, maxSlots, s.rt.dim, s.rt.maxSlots)
	}

	var staged struct {
		count                             int32
		plasticity, age, plastPrev        float32
		velocity, lastReinf               float32
		totalUpdates, totalReinforcements int32
	}
	if staged.count, err = r.i32(); err != nil {
		return err
	}
	if staged.count < 0 || int(staged.count) > s.rt.maxSlots {
		return fmt.Errorf("%w: slot count %d out of range [0, %d]", ErrInvalidInput, staged.count, s.rt.maxSlots)
	}
	if staged.plasticity, err = r.f32(); err != nil {
		return err
	}
	if staged.age, err = r.f32(); err != nil {
		return err
	}
	if staged.plastPrev, err = r.f32(); err != nil {
		return err
	}
	if staged.velocity, err = r.f32(); err != nil {
		return err
	}
	if staged.lastReinf, err = r.f32(); err != nil {
		return err
	}
	if staged.totalUpdates, err = r.i32(); err != nil {
		return err
	}
	if staged.totalReinforcements, err = r.i32(); err != nil {
		return err
	}

	want := int(staged.count) * (4*s.rt.dim + 4)
	if len(data)-r.off < want {
		return fmt.Errorf("%w: need %d slot bytes, have %d", ErrTruncated, want, len(data)-r.off)
	}

	vectors := make([]float32, int(staged.count)*s.rt.dim)
	weights := make([]float32, staged.count)
	for i := 0; i < int(staged.count); i++ {
		for j := 0; j < s.rt.dim; j++ {
			vectors[i*s.rt.dim+j], _ = r.f32()
		}
		weights[i], _ = r.f32()
	}

	// Everything parsed; swap in.
	clear(s.vectors)
	clear(s.weights)
	copy(s.vectors, vectors)
	copy(s.weights, weights)
	s.count = int(staged.count)
	s.plasticity = staged.plasticity
	s.age = staged.age
	s.plastPrev = staged.plastPrev
	s.velocity = staged.velocity
	s.lastReinf = staged.lastReinf
	s.totalUpdates = staged.totalUpdates
	s.totalReinforcements = staged.totalReinforcements

	return nil
}

// SaveFile encodes the state and writes it to path.
func SaveFile(s *State, path string) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("mind: write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a snapshot from path and decodes it into the state.
func LoadFile(s *State, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mind: read snapshot %s: %w", path, err)
	}
	return Decode(s, data)
}
