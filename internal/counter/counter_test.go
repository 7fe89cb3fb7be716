package counter

import (
	"context"
	"testing"
)

func TestStepsLandExactly(t *testing.T) {
	for _, total := range []int{1, 2, 7, 10, 49, 50, 51, 100, 1234} {
		steps := Steps(total)
		if len(steps) == 0 {
			t.Fatalf("total=%d: no steps", total)
		}
		if last := steps[len(steps)-1]; last != total {
			t.Fatalf("total=%d: landed on %d", total, last)
		}
		prev := 0
		for _, v := range steps {
			if v <= prev {
				t.Fatalf("total=%d: not strictly increasing: %v", total, steps)
			}
			if v > total {
				t.Fatalf("total=%d: overshoot to %d", total, v)
			}
			prev = v
		}
	}
}

func TestStepsFitInDuration(t *testing.T) {
	maxTicks := int(Duration / Tick)
	for _, total := range []int{1, 50, 51, 999, 100000} {
		if n := len(Steps(total)); n > maxTicks {
			t.Fatalf("total=%d: %d steps exceed %d ticks", total, n, maxTicks)
		}
	}
}

func TestStepsZero(t *testing.T) {
	steps := Steps(0)
	if len(steps) != 1 || steps[0] != 0 {
		t.Fatalf("expected [0], got %v", steps)
	}
}

func TestRunDeliversFinalTotal(t *testing.T) {
	var got []int
	if err := Run(context.Background(), 3, func(v int) { got = append(got, v) }); err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[len(got)-1] != 3 {
		t.Fatalf("expected final 3, got %v", got)
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, 100, func(int) {}); err == nil {
		t.Fatal("expected context error")
	}
}
