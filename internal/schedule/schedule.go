package schedule

import (
	"errors"
	"fmt"

	"github.com/utakatalp/league-simulator/internal/team"
)

// ErrDuplicateTeam is returned when the same team ID appears twice.
var ErrDuplicateTeam = errors.New("duplicate team")

// Pair is one ordered fixture of a round.
type Pair struct {
	Home, Away team.Team
}

// Round is a slate of non-overlapping fixtures.
type Round []Pair

// Schedule is an ordered sequence of rounds. Its length is known up front.
type Schedule struct {
	rounds []Round
}

// New wraps rounds into a Schedule.
func New(rounds []Round) Schedule {
	return Schedule{rounds: rounds}
}

// Len returns the total number of rounds.
func (s Schedule) Len() int {
	return len(s.rounds)
}

// Round returns round i (zero based). ok is false past the last round.
func (s Schedule) Round(i int) (r Round, ok bool) {
	if i < 0 || i >= len(s.rounds) {
		return nil, false
	}
	return s.rounds[i], true
}

// Fixtures returns the number of pairings across all rounds.
func (s Schedule) Fixtures() int {
	n := 0
	for _, r := range s.rounds {
		n += len(r)
	}
	return n
}

// Scheduler turns a list of teams into a schedule.
type Scheduler interface {
	Schedule(teams []team.Team) (Schedule, error)
}

// DoubleRoundRobin pairs every ordered pair of distinct teams exactly once.
// The second half repeats the first with home and away reversed.
type DoubleRoundRobin struct{}

// Schedule builds the double round-robin for teams using the circle method.
func (DoubleRoundRobin) Schedule(teams []team.Team) (Schedule, error) {
	seen := make(map[int]bool, len(teams))
	for _, t := range teams {
		if seen[t.ID] {
			return Schedule{}, fmt.Errorf("scheduling team %d (%s): %w", t.ID, t.Name, ErrDuplicateTeam)
		}
		seen[t.ID] = true
	}

	firstHalf := singleRoundRobin(teams)
	secondHalf := make([]Round, len(firstHalf))
	for i, rnd := range firstHalf {
		swapped := make(Round, len(rnd))
		for j, p := range rnd {
			swapped[j] = Pair{Home: p.Away, Away: p.Home}
		}
		secondHalf[i] = swapped
	}
	return New(append(firstHalf, secondHalf...)), nil
}

// singleRoundRobin returns one half of the season. The first slot stays
// fixed while the rest rotate by one each round. An odd field gets a bye
// slot, and whoever draws it sits the round out.
func singleRoundRobin(teams []team.Team) []Round {
	if len(teams) < 2 {
		return nil
	}

	slots := make([]*team.Team, 0, len(teams)+1)
	for i := range teams {
		slots = append(slots, &teams[i])
	}
	if len(slots)%2 != 0 {
		slots = append(slots, nil)
	}
	n := len(slots)

	rounds := make([]Round, n-1)
	for i := 0; i < n-1; i++ {
		round := make(Round, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := slots[j], slots[n-1-j]
			if home == nil || away == nil {
				continue
			}
			round = append(round, Pair{Home: *home, Away: *away})
		}
		rounds[i] = round

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}
	return rounds
}
