package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-simulator/internal/team"
)

var (
	home = team.Team{ID: 1, Name: "Arsenal", Rating: 1500}
	away = team.Team{ID: 2, Name: "Chelsea", Rating: 1500}
)

func TestResultOutcome(t *testing.T) {
	testCases := []struct {
		name       string
		homeGoals  int
		awayGoals  int
		drawn      bool
		wantWinner team.Team
		wantLoser  team.Team
	}{
		{name: "home win", homeGoals: 2, awayGoals: 0, wantWinner: home, wantLoser: away},
		{name: "away win", homeGoals: 1, awayGoals: 3, wantWinner: away, wantLoser: home},
		{name: "scoring draw", homeGoals: 2, awayGoals: 2, drawn: true},
		{name: "goalless draw", homeGoals: 0, awayGoals: 0, drawn: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := Result{Home: home, Away: away, HomeGoals: tc.homeGoals, AwayGoals: tc.awayGoals}
			assert.Equal(t, tc.drawn, r.Drawn())

			w, wok := r.Winner()
			l, lok := r.Loser()
			assert.Equal(t, !tc.drawn, wok)
			assert.Equal(t, !tc.drawn, lok)
			assert.Equal(t, tc.wantWinner, w)
			assert.Equal(t, tc.wantLoser, l)
		})
	}
}

func TestResultFormatting(t *testing.T) {
	r := Result{Home: home, Away: away, HomeGoals: 2, AwayGoals: 1}
	assert.Equal(t, "Arsenal 2 - 1 Chelsea", r.ScoreLine())
	assert.Equal(t, "2-1", r.Score())
}

func TestPoissonDeterministic(t *testing.T) {
	ctx := context.Background()
	a := NewPoisson(42)
	b := NewPoisson(42)
	for i := 0; i < 50; i++ {
		ra, err := a.Play(ctx, home, away)
		require.NoError(t, err)
		rb, err := b.Play(ctx, home, away)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
		assert.GreaterOrEqual(t, ra.HomeGoals, 0)
		assert.GreaterOrEqual(t, ra.AwayGoals, 0)
		assert.Equal(t, home, ra.Home)
		assert.Equal(t, away, ra.Away)
	}
}

func TestPoissonStrongerSideScoresMore(t *testing.T) {
	ctx := context.Background()
	strong := team.Team{ID: 3, Name: "Strong", Rating: 4500}
	weak := team.Team{ID: 4, Name: "Weak", Rating: 500}
	sim := NewPoisson(7, WithoutBonus())

	var strongGoals, weakGoals int
	for i := 0; i < 500; i++ {
		r, err := sim.Play(ctx, strong, weak)
		require.NoError(t, err)
		strongGoals += r.HomeGoals
		weakGoals += r.AwayGoals
	}
	assert.Greater(t, strongGoals, weakGoals)
}

func TestPoissonCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPoisson(1).Play(ctx, home, away)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoissonRatingDefaults(t *testing.T) {
	sim := NewPoisson(1)
	assert.Equal(t, 1500.0, sim.Rating(home))
	assert.Equal(t, float64(team.DefaultRating), sim.Rating(team.Team{ID: 9, Name: "Unrated"}))
}

func TestPoissonEloMovesRatings(t *testing.T) {
	ctx := context.Background()
	sim := NewPoisson(3, WithElo(16))
	r, err := sim.Play(ctx, home, away)
	require.NoError(t, err)

	switch {
	case r.Drawn():
		assert.InDelta(t, 1500.0, sim.Rating(home), 1e-9)
		assert.InDelta(t, 1500.0, sim.Rating(away), 1e-9)
	default:
		w, _ := r.Winner()
		l, _ := r.Loser()
		assert.InDelta(t, 1508.0, sim.Rating(w), 1e-9)
		assert.InDelta(t, 1492.0, sim.Rating(l), 1e-9)
	}
}

func TestEloUpdate(t *testing.T) {
	assert.InDelta(t, 0.5, Expected(1500, 1500), 1e-9)

	win := Result{HomeGoals: 1, AwayGoals: 0}
	h, a := EloUpdate(1500, 1500, win, DefaultK)
	assert.InDelta(t, 1504.0, h, 1e-9)
	assert.InDelta(t, 1496.0, a, 1e-9)

	draw := Result{HomeGoals: 1, AwayGoals: 1}
	h, a = EloUpdate(1600, 1400, draw, DefaultK)
	assert.Less(t, h, 1600.0)
	assert.Greater(t, a, 1400.0)
	assert.InDelta(t, 3000.0, h+a, 1e-9)
}
