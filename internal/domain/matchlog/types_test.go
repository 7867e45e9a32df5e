package matchlog

import (
	"errors"
	"testing"
)

func TestCatalogSizes(t *testing.T) {
	if got := len(Zones()); got != 12 {
		t.Fatalf("expected 12 zones, got %d", got)
	}
	if got := len(Actions()); got != 6 {
		t.Fatalf("expected 6 actions, got %d", got)
	}
}

func TestZone_Third(t *testing.T) {
	cases := []struct {
		zone Zone
		want Third
	}{
		{Zone1, ThirdDefense},
		{Zone4, ThirdDefense},
		{Zone5, ThirdMidfield},
		{Zone8, ThirdMidfield},
		{Zone9, ThirdAttack},
		{Zone12, ThirdAttack},
		{Zone("Zona 0"), ""},
	}
	for _, c := range cases {
		if got := c.zone.Third(); got != c.want {
			t.Errorf("%q: expected %q, got %q", c.zone, c.want, got)
		}
	}
}

func TestParseZone(t *testing.T) {
	cases := map[string]Zone{
		"Zona 3":    Zone3,
		"zona 3":    Zone3,
		" ZONA  11": Zone11,
		"Zóna 12":   Zone12,
	}
	for in, want := range cases {
		got, err := ParseZone(in)
		if err != nil || got != want {
			t.Errorf("ParseZone(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "Zona 13", "Zona", "3"} {
		if _, err := ParseZone(bad); !errors.Is(err, ErrInvalidZone) {
			t.Errorf("ParseZone(%q): expected ErrInvalidZone, got %v", bad, err)
		}
	}
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"Pérdida":       ActionLoss,
		"perdida":       ActionLoss,
		"RECUPERACION":  ActionRecovery,
		"tiro a puerta": ActionShotOnTarget,
		"Gol":           ActionGoal,
	}
	for in, want := range cases {
		got, err := ParseAction(in)
		if err != nil || got != want {
			t.Errorf("ParseAction(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseAction("Falta"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}
