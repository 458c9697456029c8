package physics

import (
	"errors"
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestFormulas(t *testing.T) {
	wl, err := Wavelength(SoftTissueSpeed, 5)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "wavelength", wl, 0.308)

	p, _ := Period(2)
	approx(t, "period", p, 0.5)

	att, _ := Attenuation(5, 4, 0)
	approx(t, "attenuation default coefficient", att, 10)
	att, _ = Attenuation(3, 2, 0.7)
	approx(t, "attenuation explicit coefficient", att, 4.2)

	hvl, _ := HalfValueLayer(6, 0)
	approx(t, "half-value layer", hvl, 1)

	spl, _ := SpatialPulseLength(3, SoftTissueSpeed, 5)
	approx(t, "spatial pulse length", spl, 0.924)
	ar, _ := AxialResolution(3, SoftTissueSpeed, 5)
	approx(t, "axial resolution", ar, 0.462)

	nzl, _ := NearZoneLength(10, SoftTissueSpeed, 5)
	approx(t, "near zone length", nzl, 500/6.16)

	prp, _ := PulseRepetitionPeriod(10)
	approx(t, "PRP", prp, 130)
	prf, _ := PulseRepetitionFrequency(10)
	approx(t, "PRF", prf, 1e6/130)

	df, _ := DutyFactor(1, 100)
	approx(t, "duty factor", df, 1)

	shift, _ := DopplerShift(2, 0.77, 0, SoftTissueSpeed)
	approx(t, "doppler shift", shift, 2000)
	shift, _ = DopplerShift(2, 0.77, 60, SoftTissueSpeed)
	approx(t, "doppler shift at 60 degrees", shift, 1000)
	shift, _ = DopplerShift(2, -0.77, 0, SoftTissueSpeed)
	approx(t, "doppler shift away", shift, -2000)
}

func TestInvalidInput(t *testing.T) {
	calls := map[string]func() error{
		"zero frequency":     func() error { _, err := Wavelength(1540, 0); return err },
		"negative speed":     func() error { _, err := Wavelength(-1, 5); return err },
		"NaN frequency":      func() error { _, err := Period(math.NaN()); return err },
		"zero distance":      func() error { _, err := Attenuation(5, 0, 0); return err },
		"negative coeff":     func() error { _, err := Attenuation(5, 1, -0.5); return err },
		"zero cycles":        func() error { _, err := SpatialPulseLength(0, 1540, 5); return err },
		"zero diameter":      func() error { _, err := NearZoneLength(0, 1540, 5); return err },
		"zero depth":         func() error { _, err := PulseRepetitionFrequency(0); return err },
		"duration over PRP":  func() error { _, err := DutyFactor(200, 100); return err },
		"angle over 90":      func() error { _, err := DopplerShift(5, 1, 95, 1540); return err },
		"infinite velocity":  func() error { _, err := DopplerShift(5, math.Inf(1), 0, 1540); return err },
		"negative hvl freq":  func() error { _, err := HalfValueLayer(-2, 0); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) || ie.Param == "" {
				t.Fatalf("expected *InputError naming the parameter, got %v", err)
			}
		})
	}
}

func TestTissueSpeed(t *testing.T) {
	if v, ok := TissueSpeed("soft tissue"); !ok || v != 1540 {
		t.Fatalf("soft tissue = %v, %v", v, ok)
	}
	if _, ok := TissueSpeed("granite"); ok {
		t.Fatal("unexpected match")
	}
	for i := 1; i < len(Tissues); i++ {
		if Tissues[i].Speed < Tissues[i-1].Speed {
			t.Fatalf("Tissues not sorted at %s", Tissues[i].Name)
		}
	}
}
