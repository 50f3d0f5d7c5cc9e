package match

import (
	"context"
	"fmt"

	"github.com/utakatalp/league-simulator/internal/team"
)

// Result is the final score of one fixture.
type Result struct {
	Home, Away team.Team
	HomeGoals  int
	AwayGoals  int
}

// Simulator decides the final score of a match between two teams.
type Simulator interface {
	Play(ctx context.Context, home, away team.Team) (Result, error)
}

// SimulatorFunc adapts a plain function to the Simulator interface.
type SimulatorFunc func(ctx context.Context, home, away team.Team) (Result, error)

// Play calls f(ctx, home, away).
func (f SimulatorFunc) Play(ctx context.Context, home, away team.Team) (Result, error) {
	return f(ctx, home, away)
}

// Drawn reports whether both sides scored the same number of goals.
func (r Result) Drawn() bool {
	return r.HomeGoals == r.AwayGoals
}

// Winner returns the winning side. ok is false for a draw.
func (r Result) Winner() (t team.Team, ok bool) {
	switch {
	case r.HomeGoals > r.AwayGoals:
		return r.Home, true
	case r.AwayGoals > r.HomeGoals:
		return r.Away, true
	}
	return team.Team{}, false
}

// Loser returns the losing side. ok is false for a draw.
func (r Result) Loser() (t team.Team, ok bool) {
	switch {
	case r.HomeGoals > r.AwayGoals:
		return r.Away, true
	case r.AwayGoals > r.HomeGoals:
		return r.Home, true
	}
	return team.Team{}, false
}

// ScoreLine renders the result as "Home 2 - 1 Away".
func (r Result) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s",
		r.Home.Name, r.HomeGoals,
		r.AwayGoals, r.Away.Name,
	)
}

// Score renders the bare score, e.g. "2-1".
func (r Result) Score() string {
	return fmt.Sprintf("%d-%d", r.HomeGoals, r.AwayGoals)
}
