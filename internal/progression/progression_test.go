package progression

import "testing"

func TestLevelOf(t *testing.T) {
	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{250, 3},
		{-50, 1},  // clamped: never below level 1
		{-999, 1},
	}
	for _, c := range cases {
		if got := LevelOf(c.totalXP); got != c.want {
			t.Errorf("LevelOf(%d): got %d, want %d", c.totalXP, got, c.want)
		}
	}
}

func TestProgressOf(t *testing.T) {
	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 0},
		{1, 1},
		{99, 99},
		{100, 0},
		{150, 50},
		{250, 50},
		{-50, 0}, // clamped, never negative
	}
	for _, c := range cases {
		if got := ProgressOf(c.totalXP); got != c.want {
			t.Errorf("ProgressOf(%d): got %d, want %d", c.totalXP, got, c.want)
		}
	}
}

// ProgressOf must always land in [0,100) no matter the input.
func TestProgressRange(t *testing.T) {
	for xp := -500; xp <= 500; xp++ {
		p := ProgressOf(xp)
		if p < 0 || p >= 100 {
			t.Fatalf("ProgressOf(%d) = %d, outside [0,100)", xp, p)
		}
	}
}

// Both derivations are referentially transparent.
func TestIdempotence(t *testing.T) {
	for _, xp := range []int{0, 50, 100, 250, -50} {
		if LevelOf(xp) != LevelOf(xp) || ProgressOf(xp) != ProgressOf(xp) {
			t.Fatalf("derivations for %d are not stable", xp)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(250)
	if s.TotalXP != 250 || s.Level != 3 || s.Progress != 50 {
		t.Errorf("Summarize(250) = %+v, want {250 3 50}", s)
	}
}
