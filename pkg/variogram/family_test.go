package variogram

import "testing"

func TestCorrAtZeroLag(t *testing.T) {
	for _, f := range Families() {
		if c := f.Corr(0); c != 1 {
			t.Errorf("%s: expected Corr(0)=1, got %v", f, c)
		}
	}
}

func TestCorrDecreasesWithLag(t *testing.T) {
	for _, f := range Families() {
		prev := f.Corr(0)
		for _, lag := range []float64{0.1, 0.25, 0.5, 0.75, 1.0} {
			c := f.Corr(lag)
			if c > prev {
				t.Errorf("%s: Corr increased from %v to %v at t=%v", f, prev, c, lag)
			}
			prev = c
		}
	}
}

func TestCorrPracticalRange(t *testing.T) {
	// At the normalized range all families have decayed to at most 0.05.
	for _, f := range Families() {
		if c := f.Corr(1); c > 0.05 {
			t.Errorf("%s: expected Corr(1) <= 0.05, got %v", f, c)
		}
	}
}

func TestSphericalReachesZero(t *testing.T) {
	if c := Spherical.Corr(1); c != 0 {
		t.Errorf("expected spherical Corr(1)=0, got %v", c)
	}
	if c := Spherical.Corr(1.5); c != 0 {
		t.Errorf("expected spherical Corr to stay at zero past the range, got %v", c)
	}
}

func TestParseFamily(t *testing.T) {
	for _, f := range Families() {
		got, err := ParseFamily(f.String())
		if err != nil {
			t.Errorf("ParseFamily(%q) failed: %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseFamily(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if _, err := ParseFamily("cubic"); err == nil {
		t.Error("expected an error for an unknown family name")
	}
}
