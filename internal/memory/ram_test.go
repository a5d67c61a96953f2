package memory

import (
	"bytes"
	"testing"

	"nupy/internal/value"
)

func TestNewHasInitialCapacity(t *testing.T) {
	r := New()
	if r.Capacity() != initialCapacity {
		t.Errorf("Capacity() = %d, want %d", r.Capacity(), initialCapacity)
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0", r.Count())
	}
}

func TestWriteByNameAppendsThenOverwrites(t *testing.T) {
	r := New()
	r.WriteByName("x", value.NewInt(1))
	r.WriteByName("y", value.NewInt(2))
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	addr := r.GetAddr("x")
	r.WriteByName("x", value.NewInt(99))
	if r.Count() != 2 {
		t.Errorf("overwrite grew Count() to %d, want 2", r.Count())
	}
	if r.GetAddr("x") != addr {
		t.Errorf("overwrite changed x's address from %d to %d", addr, r.GetAddr("x"))
	}
	v, ok := r.ReadByName("x")
	if !ok || v.I != 99 {
		t.Errorf("ReadByName(x) = (%+v, %v), want (99, true)", v, ok)
	}
}

func TestCapacityGrowsGeometrically(t *testing.T) {
	r := New()
	for i := 0; i < 4; i++ {
		r.WriteByName(string(rune('a'+i)), value.NewInt(int64(i)))
	}
	if r.Capacity() != 4 {
		t.Fatalf("Capacity() after 4 writes = %d, want 4", r.Capacity())
	}
	r.WriteByName("e", value.NewInt(4))
	if r.Capacity() <= 4 {
		t.Errorf("Capacity() after 5th write = %d, want > 4", r.Capacity())
	}
}

func TestReadByNameMissingReturnsNotOK(t *testing.T) {
	r := New()
	_, ok := r.ReadByName("nope")
	if ok {
		t.Error("expected ok = false for a name never written")
	}
}

func TestReadReturnsIndependentCopy(t *testing.T) {
	r := New()
	r.WriteByName("s", value.NewStr("original"))
	v, _ := r.ReadByName("s")
	v.S = "mutated"
	again, _ := r.ReadByName("s")
	if again.S != "original" {
		t.Errorf("ReadByName returned a value aliasing storage: got %q", again.S)
	}
}

func TestWriteByAddrOutOfRangeFails(t *testing.T) {
	r := New()
	if r.WriteByAddr(0, value.NewInt(1)) {
		t.Error("WriteByAddr on an empty RAM should fail")
	}
}

func TestSaveLoadImageRoundTrips(t *testing.T) {
	r := New()
	r.WriteByName("i", value.NewInt(-7))
	r.WriteByName("r", value.NewReal(2.5))
	r.WriteByName("s", value.NewStr("hello"))
	r.WriteByName("b", value.NewBool(true))
	r.WriteByName("n", value.NewNone())

	var buf bytes.Buffer
	if err := SaveImage(&buf, r); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	loaded, err := LoadImage(&buf)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if loaded.Count() != r.Count() {
		t.Fatalf("Count() = %d, want %d", loaded.Count(), r.Count())
	}
	for _, name := range r.Names() {
		want, _ := r.ReadByName(name)
		got, ok := loaded.ReadByName(name)
		if !ok || !got.Equal(want) {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}
}
