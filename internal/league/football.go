package league

import (
	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/schedule"
	"github.com/utakatalp/league-simulator/internal/team"
)

// Points awarded by association football rules.
const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// FootballSeason is an association football team season: a win/loss/draw
// record plus goals.
type FootballSeason struct {
	team team.Team
	Record
	Goals
}

// NewFootballSeason returns an empty season for t.
func NewFootballSeason(t team.Team) *FootballSeason {
	return &FootballSeason{team: t}
}

func (s *FootballSeason) Team() team.Team { return s.team }

// String returns the team name.
func (s *FootballSeason) String() string { return s.team.String() }

// Points returns 3 per win and 1 per draw.
func (s *FootballSeason) Points() int {
	return s.Wins*PointsForWin + s.Draws*PointsForDraw
}

// GoalDiff returns goals for minus goals against.
func (s *FootballSeason) GoalDiff() int {
	return s.Goals.Diff()
}

// Key ranks by points, then goal difference, then goals scored.
func (s *FootballSeason) Key() Key {
	return Key{s.Points(), s.GoalDiff(), s.For}
}

func (s *FootballSeason) Row() Row {
	return Row{
		Team:         s.team,
		Wins:         s.Wins,
		Losses:       s.Losses,
		Draws:        s.Draws,
		Points:       s.Points(),
		GoalsFor:     s.For,
		GoalsAgainst: s.Against,
		GoalDiff:     s.GoalDiff(),
	}
}

// Football implements association football league rules.
type Football struct{}

func (Football) NewSeason(t team.Team) *FootballSeason {
	return NewFootballSeason(t)
}

// Merge credits both sides with the outcome and the goals of r.
func (Football) Merge(home, away *FootballSeason, r match.Result) {
	switch {
	case r.Drawn():
		home.Drew()
		away.Drew()
	case r.HomeGoals > r.AwayGoals:
		home.Won()
		away.Lost()
	default:
		away.Won()
		home.Lost()
	}
	home.Scored(r.HomeGoals)
	away.Allowed(r.HomeGoals)
	away.Scored(r.AwayGoals)
	home.Allowed(r.AwayGoals)
}

// NewFootball builds an association football league.
func NewFootball(
	teams []team.Team,
	scheduler schedule.Scheduler,
	sim match.Simulator,
	opts ...Option,
) (*League[*FootballSeason], error) {
	return New[*FootballSeason](Football{}, teams, scheduler, sim, opts...)
}
