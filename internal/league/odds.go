package league

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/schedule"
	"github.com/utakatalp/league-simulator/internal/team"
)

// ErrInvalidRuns is returned when odds are asked for with no runs.
var ErrInvalidRuns = errors.New("runs must be positive")

// SimulatorFactory returns the simulator for one odds run. run counts from
// zero. Each call must return a simulator that shares no state with the
// ones returned before.
type SimulatorFactory func(run int) match.Simulator

// Prediction is a team's chance of finishing first, in percent.
type Prediction struct {
	Team        team.Team
	Probability float64
}

// ChampionshipOdds plays runs full football seasons from scratch, each with
// its own simulator from newSim, and returns how often each team finished
// first, highest first. Teams with equal odds keep their input order.
func ChampionshipOdds(
	ctx context.Context,
	teams []team.Team,
	scheduler schedule.Scheduler,
	newSim SimulatorFactory,
	runs int,
) ([]Prediction, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("championship odds: %d: %w", runs, ErrInvalidRuns)
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}
	if newSim == nil {
		return nil, errors.New("championship odds: simulator factory is required")
	}

	// 1) Count how many times each team ID wins
	wins := make(map[int]int, len(teams))
	for i := 0; i < runs; i++ {
		l, err := NewFootball(teams, scheduler, newSim(i))
		if err != nil {
			return nil, err
		}
		champ, err := l.PlaySeason(ctx)
		if err != nil {
			return nil, fmt.Errorf("championship odds run %d: %w", i+1, err)
		}
		wins[champ.Team().Key()]++
	}

	// 2) Turn counts into probabilities
	preds := make([]Prediction, 0, len(teams))
	for _, t := range teams {
		p := float64(wins[t.Key()]) / float64(runs) * 100.0
		preds = append(preds, Prediction{Team: t, Probability: math.Round(p*100) / 100})
	}

	// 3) Sort descending by probability
	slices.SortStableFunc(preds, func(a, b Prediction) int {
		switch {
		case a.Probability > b.Probability:
			return -1
		case a.Probability < b.Probability:
			return 1
		}
		return 0
	})
	return preds, nil
}
