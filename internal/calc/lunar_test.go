// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	t.Run("J2000 epoch", func(t *testing.T) {
		epoch := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
		if jd := JulianDay(epoch); jd != 2451545.0 {
			t.Errorf("expected Julian day 2451545.0, got %f", jd)
		}
	})
	t.Run("timezone does not affect the Julian day", func(t *testing.T) {
		loc := time.FixedZone("UTC-6", -6*3600)
		local := time.Date(2000, time.January, 1, 6, 0, 0, 0, loc)
		if jd := JulianDay(local); jd != 2451545.0 {
			t.Errorf("expected Julian day 2451545.0, got %f", jd)
		}
	})
	t.Run("round trip through FromJulianDay", func(t *testing.T) {
		instants := []time.Time{
			time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 3, 15, 0, 0, time.UTC),
			time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC),
		}
		for _, instant := range instants {
			got := FromJulianDay(JulianDay(instant))
			if diff := got.Sub(instant); diff > time.Second || diff < -time.Second {
				t.Errorf("round trip of %s returned %s", instant, got)
			}
		}
	})
}

func TestLunarAge(t *testing.T) {
	if age := LunarAge(NewMoonReference); age != 0 {
		t.Errorf("expected age 0 at the reference new moon, got %f", age)
	}
	if age := LunarAge(NewMoonReference + SynodicMonth/2); math.Abs(age-SynodicMonth/2) > 1e-6 {
		t.Errorf("expected age %f, got %f", SynodicMonth/2, age)
	}
	if age := LunarAge(NewMoonReference - 1); math.Abs(age-(SynodicMonth-1)) > 1e-6 {
		t.Errorf("expected age %f before the reference, got %f", SynodicMonth-1, age)
	}
}

func TestLunarIllumination(t *testing.T) {
	if illum := LunarIllumination(0); illum > 0.05 {
		t.Errorf("expected new moon illumination near 0, got %f", illum)
	}
	if illum := LunarIllumination(SynodicMonth / 2); illum < 0.95 {
		t.Errorf("expected full moon illumination near 1, got %f", illum)
	}
	if illum := LunarIllumination(SynodicMonth / 4); math.Abs(illum-0.5) > 0.01 {
		t.Errorf("expected quarter moon illumination near 0.5, got %f", illum)
	}
}

func TestLunarPhaseName(t *testing.T) {
	tests := []struct {
		age  float64
		want string
	}{
		{0, PhaseNewMoon},
		{0.5, PhaseNewMoon},
		{3, PhaseWaxingCrescent},
		{7.5, PhaseFirstQuarter},
		{10, PhaseWaxingGibbous},
		{14.8, PhaseFullMoon},
		{18, PhaseWaningGibbous},
		{21, PhaseThirdQuarter},
		{26, PhaseWaningCrescent},
		{29, PhaseNewMoon},
	}
	for _, tc := range tests {
		if got := LunarPhaseName(tc.age); got != tc.want {
			t.Errorf("expected phase %q for age %.1f, got %q", tc.want, tc.age, got)
		}
	}
}

func TestNextMoons(t *testing.T) {
	start := FromJulianDay(NewMoonReference + 1)

	t.Run("next new moon", func(t *testing.T) {
		next := NextNewMoon(start)
		if !next.After(start) {
			t.Fatalf("expected next new moon after %s, got %s", start, next)
		}
		if next.Sub(start) > time.Duration(SynodicMonth*24*float64(time.Hour)) {
			t.Errorf("expected next new moon within one lunar cycle, got %s", next)
		}
		age := LunarAge(JulianDay(next))
		if age > 0.01 && age < SynodicMonth-0.01 {
			t.Errorf("expected lunar age near 0 at next new moon, got %f", age)
		}
	})
	t.Run("next full moon", func(t *testing.T) {
		next := NextFullMoon(start)
		if !next.After(start) {
			t.Fatalf("expected next full moon after %s, got %s", start, next)
		}
		age := LunarAge(JulianDay(next))
		if math.Abs(age-SynodicMonth/2) > 0.01 {
			t.Errorf("expected lunar age near %f at next full moon, got %f", SynodicMonth/2, age)
		}
	})
	t.Run("full moon already passed in this cycle", func(t *testing.T) {
		late := FromJulianDay(NewMoonReference + 20)
		next := NextFullMoon(late)
		want := NewMoonReference + SynodicMonth*1.5
		if math.Abs(JulianDay(next)-want) > 0.001 {
			t.Errorf("expected next full moon at JD %f, got %f", want, JulianDay(next))
		}
	})
}
