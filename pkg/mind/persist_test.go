package mind

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

func populated(t *testing.T) *State {
	t.Helper()
	st := newTestState(t, 4, 8)
	inputs := [][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0.9, 0.1, 0, 0},
		{0, 0, 1, 0},
	}
	for _, v := range inputs {
		if _, err := st.Update(v, 0.5); err != nil {
			t.Fatal(err)
		}
	}
	return st
}

func TestEncodeSize(t *testing.T) {
	st := populated(t)
	data, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	if want := SnapshotSize(4, st.SlotCount()); len(data) != want {
		t.Errorf("encoded size = %d, want %d", len(data), want)
	}
}

func TestRoundTrip(t *testing.T) {
	src := populated(t)
	data, err := Encode(src)
	if err != nil {
		t.Fatal(err)
	}

	dst := newTestState(t, 4, 8)
	if err := Decode(dst, data); err != nil {
		t.Fatal(err)
	}

	if src.Temporal() != dst.Temporal() {
		t.Errorf("temporal views differ:\nsrc %+v\ndst %+v", src.Temporal(), dst.Temporal())
	}
	if src.Plasticity() != dst.Plasticity() {
		t.Errorf("plasticity views differ")
	}
	if src.SlotCount() != dst.SlotCount() {
		t.Fatalf("slot counts differ: %d vs %d", src.SlotCount(), dst.SlotCount())
	}
	for i := 0; i < src.SlotCount(); i++ {
		if src.SlotWeight(i) != dst.SlotWeight(i) {
			t.Errorf("slot %d weight differs: %v vs %v", i, src.SlotWeight(i), dst.SlotWeight(i))
		}
		sv, dv := src.SlotVector(i), dst.SlotVector(i)
		for j := range sv {
			if sv[j] != dv[j] {
				t.Errorf("slot %d component %d differs: %v vs %v", i, j, sv[j], dv[j])
			}
		}
	}

	// A previously used query yields the same confidence bits.
	q := []float32{1, 0, 0, 0}
	hs, err := src.Query(q)
	if err != nil {
		t.Fatal(err)
	}
	hd, err := dst.Query(q)
	if err != nil {
		t.Fatal(err)
	}
	if hs.Confidence != hd.Confidence {
		t.Errorf("confidence differs after round trip: %v vs %v", hs.Confidence, hd.Confidence)
	}
}

func TestDecodeOverwritesExistingState(t *testing.T) {
	src := populated(t)
	data, err := Encode(src)
	if err != nil {
		t.Fatal(err)
	}

	// The destination has lived its own life; Decode replaces it all.
	dst := newTestState(t, 4, 8)
	for i := 0; i < 30; i++ {
		dst.Update([]float32{0, 0, 0, 1}, 2.0)
	}
	if err := Decode(dst, data); err != nil {
		t.Fatal(err)
	}
	if src.Temporal() != dst.Temporal() {
		t.Errorf("decode did not fully overwrite state")
	}
	// Non-loaded slot weights are reset.
	if w := dst.SlotWeight(dst.SlotCount()); w != 0 {
		t.Errorf("weight beyond loaded slots = %v, want 0", w)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	src := populated(t)
	data, _ := Encode(src)
	binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)

	dst := newTestState(t, 4, 8)
	if err := Decode(dst, data); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestDecodeBadVersion(t *testing.T) {
	src := populated(t)
	data, _ := Encode(src)
	binary.LittleEndian.PutUint32(data[4:], 99)

	dst := newTestState(t, 4, 8)
	if err := Decode(dst, data); !errors.Is(err, ErrBadVersion) {
		t.Errorf("got %v, want ErrBadVersion", err)
	}
}

func TestDecodeConfigMismatch(t *testing.T) {
	src := populated(t)
	data, _ := Encode(src)

	cases := []struct {
		name          string
		dim, maxSlots int
	}{
		{"different dim", 8, 8},
		{"different capacity", 4, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := newTestState(t, tc.dim, tc.maxSlots)
			dst.Update(make([]float32, tc.dim), 1.0)
			before := dst.Temporal()

			if err := Decode(dst, data); !errors.Is(err, ErrConfigMismatch) {
				t.Fatalf("got %v, want ErrConfigMismatch", err)
			}
			if after := dst.Temporal(); before != after {
				t.Errorf("failed decode mutated target state")
			}
		})
	}
}

func TestDecodeTruncatedLeavesStateUntouched(t *testing.T) {
	src := populated(t)
	data, _ := Encode(src)

	dst := newTestState(t, 4, 8)
	dst.Update([]float32{0, 0, 0, 1}, 1.0)
	before := dst.Temporal()

	// Cut mid-slot-record: header validates, slot data is short.
	for _, n := range []int{len(data) - 1, headerSize + stateBlockSize + 3, headerSize + 2, 0} {
		if err := Decode(dst, data[:n]); err == nil {
			t.Fatalf("decode of %d bytes succeeded, want error", n)
		}
	}
	if after := dst.Temporal(); before != after {
		t.Errorf("truncated decode mutated target state")
	}
}

func TestSaveLoadFile(t *testing.T) {
	src := populated(t)
	path := filepath.Join(t.TempDir(), "state.mind")

	if err := SaveFile(src, path); err != nil {
		t.Fatal(err)
	}

	dst := newTestState(t, 4, 8)
	if err := LoadFile(dst, path); err != nil {
		t.Fatal(err)
	}
	if src.Temporal() != dst.Temporal() {
		t.Errorf("file round trip lost state")
	}

	if err := LoadFile(dst, filepath.Join(t.TempDir(), "missing.mind")); err == nil {
		t.Error("load of missing file succeeded, want error")
	}
}

func TestEncodeEmptyState(t *testing.T) {
	st := newTestState(t, 4, 8)
	data, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != headerSize+stateBlockSize {
		t.Errorf("empty state snapshot = %d bytes, want %d", len(data), headerSize+stateBlockSize)
	}

	dst := newTestState(t, 4, 8)
	dst.Update([]float32{1, 0, 0, 0}, 1.0)
	if err := Decode(dst, data); err != nil {
		t.Fatal(err)
	}
	if dst.SlotCount() != 0 {
		t.Errorf("slot count = %d, want 0", dst.SlotCount())
	}
}
