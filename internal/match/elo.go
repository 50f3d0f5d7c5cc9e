package match

import "math"

// DefaultK is the Elo K factor used when none is given.
const DefaultK = 8.0

// Expected returns the expected score of a side rated a against one rated b.
func Expected(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400))
}

// EloUpdate returns the new ratings of the home and away sides after r.
func EloUpdate(home, away float64, r Result, k float64) (newHome, newAway float64) {
	var scoreHome, scoreAway float64
	switch {
	case r.HomeGoals > r.AwayGoals:
		scoreHome, scoreAway = 1, 0
	case r.HomeGoals < r.AwayGoals:
		scoreHome, scoreAway = 0, 1
	default:
		scoreHome, scoreAway = 0.5, 0.5
	}
	newHome = home + k*(scoreHome-Expected(home, away))
	newAway = away + k*(scoreAway-Expected(away, home))
	return newHome, newAway
}
