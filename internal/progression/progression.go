// Package progression derives a member's level and progress from their
// total XP. All functions are pure: same input, same output, no I/O.
package progression

// XPPerLevel is the fixed band width of the leveling formula.
const XPPerLevel = 100

// Summary is the derived progression state shown on a profile.
type Summary struct {
	TotalXP  int `json:"total_xp"`
	Level    int `json:"level"`
	Progress int `json:"progress"` // percent into the current level, [0,100)
}

// clamp floors a total at zero. The leave flow can drive a raw total
// negative (leaving costs 50 XP), and the leveling formula is only
// meaningful for non-negative totals: a member is never below level 1.
func clamp(totalXP int) int {
	if totalXP < 0 {
		return 0
	}
	return totalXP
}

// LevelOf returns floor(total/100) + 1 with the total clamped at zero.
// LevelOf(0) == 1, LevelOf(99) == 1, LevelOf(100) == 2.
func LevelOf(totalXP int) int {
	return clamp(totalXP)/XPPerLevel + 1
}

// ProgressOf returns the percent advanced into the current level,
// always in [0,100). Negative totals report 0.
func ProgressOf(totalXP int) int {
	return clamp(totalXP) % XPPerLevel
}

// Summarize bundles total, level, and progress for display.
func Summarize(totalXP int) Summary {
	return Summary{
		TotalXP:  totalXP,
		Level:    LevelOf(totalXP),
		Progress: ProgressOf(totalXP),
	}
}
