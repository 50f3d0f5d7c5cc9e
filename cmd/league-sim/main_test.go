package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-simulator/internal/config"
	"github.com/utakatalp/league-simulator/internal/league"
	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/render"
	"github.com/utakatalp/league-simulator/internal/schedule"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LEAGUE_TEAMS", "LEAGUE_SEED", "LEAGUE_DATABASE_URL", "LEAGUE_ODDS_RUNS", "LEAGUE_ELO_K", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestTeamsFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_TEAMS", "Alpha,Beta,Gamma")

	out := execute(t, "schedule", "--teams", "X,Y")
	assert.Equal(t, 2, strings.Count(out, "Round "))
	assert.Contains(t, out, "X vs Y")
	assert.Contains(t, out, "Y vs X")
	assert.NotContains(t, out, "Alpha")

	out = execute(t, "schedule")
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "X vs Y")
}

func TestZeroSeedFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_TEAMS", "A:1600,B:1500,C:1400,D:1550")

	t.Setenv("LEAGUE_SEED", "0")
	fromEnv := execute(t, "season", "--fixtures=false")

	t.Setenv("LEAGUE_SEED", "5")
	fromFlag := execute(t, "season", "--fixtures=false", "--seed", "0")
	assert.Equal(t, fromEnv, fromFlag)

	teams, err := config.ParseTeams("A:1600,B:1500,C:1400,D:1550")
	require.NoError(t, err)
	l, err := league.NewFootball(teams, schedule.DoubleRoundRobin{}, match.NewPoisson(0))
	require.NoError(t, err)
	_, err = l.PlaySeason(context.Background())
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, render.Standings(&want, l.Round(), l.Standings()))
	assert.True(t, strings.HasPrefix(fromFlag, want.String()), fromFlag)
}

func TestZeroEloFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_TEAMS", "A:1600,B:1500,C:1400")
	t.Setenv("LEAGUE_ELO_K", "32")

	withFlag := execute(t, "season", "--fixtures=false", "--seed", "3", "--elo", "0")

	t.Setenv("LEAGUE_ELO_K", "")
	withoutElo := execute(t, "season", "--fixtures=false", "--seed", "3")
	assert.Equal(t, withoutElo, withFlag)
}

func TestOddsUsesFreshSimulatorPerRun(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_TEAMS", "Alpha,Beta")
	t.Setenv("LEAGUE_ODDS_RUNS", "999")

	out := execute(t, "odds", "--teams", "A:1700,B:1400,C:1500", "--seed", "3", "--runs", "6")

	teams, err := config.ParseTeams("A:1700,B:1400,C:1500")
	require.NoError(t, err)
	preds, err := league.ChampionshipOdds(context.Background(), teams, schedule.DoubleRoundRobin{},
		func(run int) match.Simulator { return match.NewPoisson(3+int64(run)) }, 6)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, render.Odds(&want, preds))
	assert.Equal(t, want.String(), out)
}

func TestSimulatorFactory(t *testing.T) {
	cfg := &config.Config{Seed: 10, EloK: 16}
	newSim := simulatorFactory(cfg)

	a, b := newSim(2), newSim(2)
	assert.NotSame(t, a, b)

	teams, err := config.ParseTeams(config.DefaultTeams)
	require.NoError(t, err)

	ctx := context.Background()
	want, err := match.NewPoisson(12, match.WithElo(16)).Play(ctx, teams[0], teams[1])
	require.NoError(t, err)
	got, err := a.Play(ctx, teams[0], teams[1])
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// playing on a must not have moved b
	got, err = b.Play(ctx, teams[0], teams[1])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
