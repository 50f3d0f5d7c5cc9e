// Package config loads simulator settings from environment variables.
// cmd/league-sim loads a .env file, if present, before calling Load.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/utakatalp/league-simulator/internal/team"
)

// DefaultTeams is used when LEAGUE_TEAMS is unset.
const DefaultTeams = "Arsenal:1620,Chelsea:1580,Liverpool:1640,Manchester City:1680"

// ErrNoTeams is returned when a team list parses to nothing.
var ErrNoTeams = errors.New("no teams configured")

// Config holds the simulator settings.
type Config struct {
	Teams       []team.Team
	Seed        int64
	DatabaseURL string // empty disables the season archive
	OddsRuns    int
	EloK        float64 // zero keeps ratings fixed

	LogLevel  string
	LogFormat string // text or json
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	teams, err := ParseTeams(envOr("LEAGUE_TEAMS", DefaultTeams))
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TEAMS: %w", err)
	}
	seed, err := strconv.ParseInt(envOr("LEAGUE_SEED", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_SEED: %w", err)
	}
	runs, err := strconv.Atoi(envOr("LEAGUE_ODDS_RUNS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_ODDS_RUNS: %w", err)
	}
	eloK, err := strconv.ParseFloat(envOr("LEAGUE_ELO_K", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_ELO_K: %w", err)
	}

	return &Config{
		Teams:       teams,
		Seed:        seed,
		DatabaseURL: os.Getenv("LEAGUE_DATABASE_URL"),
		OddsRuns:    runs,
		EloK:        eloK,
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "text"),
	}, nil
}

// ParseTeams parses a comma separated list of "Name" or "Name:rating"
// entries. Only a numeric suffix after the last colon is a rating, so
// "Inter:Milan" is a team name. IDs are assigned from 1 in list order.
func ParseTeams(s string) ([]team.Team, error) {
	var teams []team.Team
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, rating := part, float64(team.DefaultRating)
		if i := strings.LastIndex(part, ":"); i >= 0 {
			if r, ok := parseRating(part[i+1:]); ok {
				if r <= 0 {
					return nil, fmt.Errorf("team %q: rating must be positive", part)
				}
				name, rating = strings.TrimSpace(part[:i]), r
			}
		}
		if name == "" {
			return nil, fmt.Errorf("team %q: empty name", part)
		}
		if seen[name] {
			return nil, fmt.Errorf("team %q listed twice", name)
		}
		seen[name] = true
		teams = append(teams, team.Team{ID: len(teams) + 1, Name: name, Rating: rating})
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}
	return teams, nil
}

func parseRating(s string) (float64, bool) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
