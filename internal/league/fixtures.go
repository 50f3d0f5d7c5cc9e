package league

import (
	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/team"
)

// FixtureKey identifies an ordered (home, away) fixture by team ID.
type FixtureKey struct {
	Home, Away int
}

// KeyOf returns the fixture key of home against away.
func KeyOf(home, away team.Team) FixtureKey {
	return FixtureKey{Home: home.Key(), Away: away.Key()}
}

// Fixtures stores played results keyed by ordered team pair. (A, B) and
// (B, A) are different fixtures.
type Fixtures struct {
	results map[FixtureKey]match.Result
	order   []FixtureKey
}

// NewFixtures returns an empty fixture store.
func NewFixtures() *Fixtures {
	return &Fixtures{results: make(map[FixtureKey]match.Result)}
}

// Record stores r as the result of home against away, replacing any
// previous entry for the same fixture.
func (f *Fixtures) Record(home, away team.Team, r match.Result) {
	k := KeyOf(home, away)
	if _, ok := f.results[k]; !ok {
		f.order = append(f.order, k)
	}
	f.results[k] = r
}

// Lookup returns the result of home against away. ok is false if the
// fixture has not been played.
func (f *Fixtures) Lookup(home, away team.Team) (r match.Result, ok bool) {
	r, ok = f.results[KeyOf(home, away)]
	return r, ok
}

// Len returns the number of played fixtures.
func (f *Fixtures) Len() int {
	return len(f.results)
}

// Results returns every played result in the order first recorded.
func (f *Fixtures) Results() []match.Result {
	out := make([]match.Result, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, f.results[k])
	}
	return out
}
