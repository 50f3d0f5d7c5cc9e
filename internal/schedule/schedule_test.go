package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-simulator/internal/team"
)

func makeTeams(n int) []team.Team {
	teams := make([]team.Team, n)
	for i := range teams {
		teams[i] = team.Team{ID: i + 1, Name: fmt.Sprintf("T%d", i+1)}
	}
	return teams
}

func TestDoubleRoundRobinProperties(t *testing.T) {
	for n := 0; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := makeTeams(n)
			s, err := DoubleRoundRobin{}.Schedule(teams)
			require.NoError(t, err)

			wantRounds := 0
			switch {
			case n < 2:
			case n%2 == 0:
				wantRounds = 2 * (n - 1)
			default:
				wantRounds = 2 * n
			}
			assert.Equal(t, wantRounds, s.Len())
			assert.Equal(t, n*(n-1), s.Fixtures())

			type key struct{ home, away int }
			seen := make(map[key]int)
			for i := 0; i < s.Len(); i++ {
				r, ok := s.Round(i)
				require.True(t, ok)
				inRound := make(map[int]bool)
				for _, p := range r {
					assert.NotEqual(t, p.Home.ID, p.Away.ID, "team plays itself")
					assert.False(t, inRound[p.Home.ID], "team %d twice in round %d", p.Home.ID, i)
					assert.False(t, inRound[p.Away.ID], "team %d twice in round %d", p.Away.ID, i)
					inRound[p.Home.ID] = true
					inRound[p.Away.ID] = true
					seen[key{p.Home.ID, p.Away.ID}]++
				}
			}
			for _, h := range teams {
				for _, a := range teams {
					if h.ID == a.ID {
						continue
					}
					assert.Equal(t, 1, seen[key{h.ID, a.ID}], "%s v %s", h, a)
				}
			}
		})
	}
}

func TestSecondHalfMirrorsFirst(t *testing.T) {
	s, err := DoubleRoundRobin{}.Schedule(makeTeams(6))
	require.NoError(t, err)

	half := s.Len() / 2
	for i := 0; i < half; i++ {
		first, _ := s.Round(i)
		second, _ := s.Round(i + half)
		require.Len(t, second, len(first))
		for j := range first {
			assert.Equal(t, first[j].Home, second[j].Away)
			assert.Equal(t, first[j].Away, second[j].Home)
		}
	}
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	teams := makeTeams(5)
	orig := append([]team.Team(nil), teams...)
	_, err := DoubleRoundRobin{}.Schedule(teams)
	require.NoError(t, err)
	assert.Equal(t, orig, teams)
}

func TestScheduleRejectsDuplicates(t *testing.T) {
	teams := []team.Team{{ID: 1, Name: "A"}, {ID: 1, Name: "A again"}}
	_, err := DoubleRoundRobin{}.Schedule(teams)
	assert.ErrorIs(t, err, ErrDuplicateTeam)
}

func TestRoundOutOfRange(t *testing.T) {
	s, err := DoubleRoundRobin{}.Schedule(makeTeams(4))
	require.NoError(t, err)

	_, ok := s.Round(-1)
	assert.False(t, ok)
	_, ok = s.Round(s.Len())
	assert.False(t, ok)
}
