// Package render prints league state as plain text tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/utakatalp/league-simulator/internal/league"
	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/schedule"
	"github.com/utakatalp/league-simulator/internal/team"
)

// LookupFunc returns the result of home against away, if played.
type LookupFunc func(home, away team.Team) (match.Result, bool)

// Standings writes the league table after round.
func Standings(w io.Writer, round int, rows []league.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "After Round %d:\n", round)
	fmt.Fprintf(tw, "#\t%s\t\n", strings.Join(league.RowHeader, "\t"))
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t\n", i+1, r)
	}
	return tw.Flush()
}

// FixtureGrid returns grid[i][j], the result of teams[i] at home against
// teams[j]: the score if played, blank otherwise.
func FixtureGrid(teams []team.Team, lookup LookupFunc) [][]string {
	grid := make([][]string, len(teams))
	for i, home := range teams {
		grid[i] = make([]string, len(teams))
		for j, away := range teams {
			if i == j {
				continue
			}
			if r, ok := lookup(home, away); ok {
				grid[i][j] = r.Score()
			}
		}
	}
	return grid
}

// Fixtures writes the fixture grid, home teams down the side and away teams
// across the top.
func Fixtures(w io.Writer, teams []team.Team, lookup LookupFunc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Home \\ Away\t")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t", t.Name)
	}
	fmt.Fprintln(tw)

	for i, row := range FixtureGrid(teams, lookup) {
		fmt.Fprintf(tw, "%s\t", teams[i].Name)
		for _, cell := range row {
			fmt.Fprintf(tw, "%s\t", cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Schedule writes the pairings of every round.
func Schedule(w io.Writer, s schedule.Schedule) error {
	for i := 0; i < s.Len(); i++ {
		r, _ := s.Round(i)
		if _, err := fmt.Fprintf(w, "Round %d:\n", i+1); err != nil {
			return err
		}
		for _, p := range r {
			if _, err := fmt.Fprintf(w, "  %s vs %s\n", p.Home.Name, p.Away.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Results writes one score line per result.
func Results(w io.Writer, results []match.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, "  "+r.ScoreLine()); err != nil {
			return err
		}
	}
	return nil
}

// Odds writes championship predictions as percentages.
func Odds(w io.Writer, preds []league.Prediction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tChampion %\t")
	for _, p := range preds {
		fmt.Fprintf(tw, "%s\t%.2f\t\n", p.Team.Name, p.Probability)
	}
	return tw.Flush()
}
