package jitter

import (
	"math/rand"
	"testing"
	"time"
)

func TestDuration_Bounds(t *testing.T) {
	base := 100 * time.Millisecond

	for i := 0; i < 100; i++ {
		got := Duration(base, DefaultJitter)
		if got < base || got > base+base/2 {
			t.Fatalf("duration %v out of [%v, %v]", got, base, base+base/2)
		}
	}
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	base := 100 * time.Millisecond

	a := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(1)))
	b := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(1)))
	if a != b {
		t.Errorf("expected deterministic result, got %v and %v", a, b)
	}
}

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	// Без джиттера рост строго удваивается до потолка
	if got := ExponentialBackoff(base, max, 0, 0); got != base {
		t.Errorf("attempt 0: expected %v, got %v", base, got)
	}
	if got := ExponentialBackoff(base, max, 2, 0); got != 400*time.Millisecond {
		t.Errorf("attempt 2: expected 400ms, got %v", got)
	}
	if got := ExponentialBackoff(base, max, 10, 0); got != max {
		t.Errorf("attempt 10: expected cap %v, got %v", max, got)
	}
}
