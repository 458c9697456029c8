package progress

import "math"

// XP scoring constants.
const (
	BaseXP           = 5
	SpeedBonusXP     = 3
	StreakBonusXP    = 2
	SpeedBonusSecs   = 10 // answers faster than this earn the speed bonus
	StreakBonusAfter = 5  // streak length that earns the streak bonus
	XPPerLevel       = 100
)

// XPForAnswer returns the XP earned by one answer. streak is the current
// streak after the answer was counted.
func XPForAnswer(correct bool, timeSpentSecs, streak int) int {
	if !correct {
		return 0
	}
	xp := BaseXP
	if timeSpentSecs < SpeedBonusSecs {
		xp += SpeedBonusXP
	}
	if streak >= StreakBonusAfter {
		xp += StreakBonusXP
	}
	return xp
}

// LevelFor maps cumulative XP to a level, starting at 1 and rising every
// XPPerLevel points.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPToNextLevel returns the XP still needed to reach the next level.
func XPToNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return XPPerLevel - xp%XPPerLevel
}

// Percent returns round(100*n/d) clamped to [0,100]. A zero or negative
// denominator yields 0.
func Percent(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	return clampPercent(int(math.Round(100 * float64(n) / float64(d))))
}
