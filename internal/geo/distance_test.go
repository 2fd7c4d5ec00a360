package geo

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestDistance(t *testing.T) {
	t.Parallel()

	t.Run("same point is zero", func(t *testing.T) {
		d := Distance(ptr(37.5665), ptr(126.9780), ptr(37.5665), ptr(126.9780))
		if d != 0 {
			t.Fatalf("expected 0, got %f", d)
		}
	})

	t.Run("known distance within tolerance", func(t *testing.T) {
		// Seoul City Hall to Gwanghwamun, roughly 800-900 m.
		d := Distance(ptr(37.5665), ptr(126.9780), ptr(37.5759), ptr(126.9769))
		if d < 800 || d > 1200 {
			t.Fatalf("expected roughly 1km, got %f", d)
		}
	})

	t.Run("missing coordinate is infinite", func(t *testing.T) {
		d := Distance(nil, ptr(126.9780), ptr(37.5759), ptr(126.9769))
		if !math.IsInf(d, 1) {
			t.Fatalf("expected +Inf, got %f", d)
		}
	})
}
