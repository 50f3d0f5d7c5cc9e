package league

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/team"
)

// Record counts wins, losses and draws.
type Record struct {
	Wins, Losses, Draws int
}

// Won adds a win.
func (r *Record) Won() { r.Wins++ }

// Lost adds a loss.
func (r *Record) Lost() { r.Losses++ }

// Drew adds a draw.
func (r *Record) Drew() { r.Draws++ }

// Played returns the number of decided and drawn matches.
func (r Record) Played() int {
	return r.Wins + r.Losses + r.Draws
}

// Goals counts goals scored and conceded. Values are assumed non-negative.
type Goals struct {
	For, Against int
}

// Scored adds n to goals for.
func (g *Goals) Scored(n int) { g.For += n }

// Allowed adds n to goals against.
func (g *Goals) Allowed(n int) { g.Against += n }

// Diff returns goals for minus goals against.
func (g Goals) Diff() int {
	return g.For - g.Against
}

// Key ranks a season. Keys are compared element by element; larger ranks
// higher.
type Key []int

// CompareKeys returns -1, 0 or +1 comparing a and b lexicographically. A
// shorter key that is a prefix of the longer one sorts first.
func CompareKeys(a, b Key) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Row is one line of the standings table.
type Row struct {
	Team                   team.Team
	Wins, Losses, Draws    int
	Points                 int
	GoalsFor, GoalsAgainst int
	GoalDiff               int
}

// Played returns the number of matches behind the row.
func (r Row) Played() int {
	return r.Wins + r.Losses + r.Draws
}

// RowHeader names the columns of Row.Cells.
var RowHeader = []string{"Team", "P", "W", "L", "D", "Pts", "GF", "GA", "GD"}

// Cells returns the row's columns, in RowHeader order. Goal difference is
// signed.
func (r Row) Cells() []string {
	return []string{
		r.Team.Name,
		strconv.Itoa(r.Played()),
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		strconv.Itoa(r.Draws),
		strconv.Itoa(r.Points),
		strconv.Itoa(r.GoalsFor),
		strconv.Itoa(r.GoalsAgainst),
		fmt.Sprintf("%+d", r.GoalDiff),
	}
}

// String renders the cells as one tab separated line, the plain text form
// used in logs.
func (r Row) String() string {
	return strings.Join(r.Cells(), "\t")
}

// Season is one team's participation in a league.
type Season interface {
	Team() team.Team
	// Key orders seasons in the standings, compared descending.
	Key() Key
	Row() Row
}

// Rules is a league variant: how seasons are created and how a result is
// merged into them.
type Rules[S Season] interface {
	NewSeason(t team.Team) S
	Merge(home, away S, r match.Result)
}
