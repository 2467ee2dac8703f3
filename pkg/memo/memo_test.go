package memo

import (
	"errors"
	"testing"
)

func TestLazyComputesOnce(t *testing.T) {
	var l Lazy[int]
	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	for i := 0; i < 3; i++ {
		if got := l.Get(compute); got != 42 {
			t.Fatalf("Get() = %d, want 42", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

type input struct {
	scale  float64
	origin []float64
}

func equalInput(a, b input) bool {
	return a.scale == b.scale && EqualFloats(a.origin, b.origin)
}

func TestLastHitAndMiss(t *testing.T) {
	calls := 0
	cache := NewLast(equalInput, func(in input) (*float64, error) {
		calls++
		v := in.scale * in.origin[0]
		return &v, nil
	})

	first, hit, err := cache.Get(input{scale: 2, origin: []float64{1, 2}})
	if err != nil || hit {
		t.Fatalf("first Get: hit=%v err=%v", hit, err)
	}

	// A distinct slice with equal contents is still a hit.
	second, hit, _ := cache.Get(input{scale: 2, origin: []float64{1, 2}})
	if !hit || second != first {
		t.Error("equal input should return the identical cached value")
	}

	third, hit, _ := cache.Get(input{scale: 2, origin: []float64{1, 3}})
	if hit || third == first {
		t.Error("changed element should recompute")
	}

	// Only one entry is kept: the original input is a miss again.
	_, hit, _ = cache.Get(input{scale: 2, origin: []float64{1, 2}})
	if hit {
		t.Error("cache should hold a single entry")
	}
	if calls != 3 {
		t.Errorf("compute ran %d times, want 3", calls)
	}
}

func TestLastDoesNotCacheErrors(t *testing.T) {
	fail := true
	cache := NewLast(func(a, b int) bool { return a == b }, func(k int) (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return k * 2, nil
	})

	if _, _, err := cache.Get(1); err == nil {
		t.Fatal("expected error")
	}
	fail = false
	got, hit, err := cache.Get(1)
	if err != nil || hit || got != 2 {
		t.Errorf("Get after error = (%d, %v, %v), want (2, false, nil)", got, hit, err)
	}

	cache.Reset()
	if _, hit, _ := cache.Get(1); hit {
		t.Error("Reset should drop the cached entry")
	}
}

func TestEqualFloats(t *testing.T) {
	if !EqualFloats(nil, []float64{}) {
		t.Error("nil and empty should be equal")
	}
	if EqualFloats([]float64{1}, []float64{1, 2}) {
		t.Error("different lengths should differ")
	}
}
