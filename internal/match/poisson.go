package match

import (
	"context"
	"math"
	"math/rand"

	"github.com/utakatalp/league-simulator/internal/team"
)

const (
	// averageGoals is the expected combined score of a match.
	averageGoals = 3.0
	// formWeight is the strength added per previous head-to-head win.
	formWeight = 0.4
)

// Poisson simulates scores from team strengths. Each side's goal mean is
// its share of the combined strength scaled to averageGoals.
//
// A Poisson is not safe for concurrent use.
type Poisson struct {
	rng     *rand.Rand
	ratings map[int]float64
	h2h     map[pairKey]int // h2h[{winner, loser}] = wins of winner over loser
	adjust  bool
	kFactor float64
	noBonus bool
}

type pairKey struct{ winner, loser int }

// PoissonOption configures a Poisson simulator.
type PoissonOption func(*Poisson)

// WithElo updates the strength of both sides after every match using an
// Elo rule with the given K factor.
func WithElo(k float64) PoissonOption {
	return func(p *Poisson) {
		p.adjust = true
		p.kFactor = k
	}
}

// WithoutBonus disables the extra 0-1 goal added to each Poisson sample.
func WithoutBonus() PoissonOption {
	return func(p *Poisson) { p.noBonus = true }
}

// NewPoisson returns a simulator seeded with seed. Equal seeds and equal
// call sequences produce equal scores.
func NewPoisson(seed int64, opts ...PoissonOption) *Poisson {
	p := &Poisson{
		rng:     rand.New(rand.NewSource(seed)),
		ratings: make(map[int]float64),
		h2h:     make(map[pairKey]int),
		kFactor: DefaultK,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rating returns the current strength of t.
func (p *Poisson) Rating(t team.Team) float64 {
	if r, ok := p.ratings[t.ID]; ok {
		return r
	}
	if t.Rating > 0 {
		return t.Rating
	}
	return team.DefaultRating
}

// Play samples a score for home against away.
func (p *Poisson) Play(ctx context.Context, home, away team.Team) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// 1) head-to-head form
	hhHome := float64(p.h2h[pairKey{home.ID, away.ID}])
	hhAway := float64(p.h2h[pairKey{away.ID, home.ID}])

	// 2) base strength plus form
	baseHome := p.Rating(home) + hhHome*formWeight
	baseAway := p.Rating(away) + hhAway*formWeight

	// 3) normalize into Poisson means
	total := baseHome + baseAway
	lambdaHome := baseHome / total * averageGoals
	lambdaAway := baseAway / total * averageGoals

	res := Result{
		Home:      home,
		Away:      away,
		HomeGoals: p.sample(lambdaHome),
		AwayGoals: p.sample(lambdaAway),
	}

	if w, ok := res.Winner(); ok {
		l, _ := res.Loser()
		p.h2h[pairKey{w.ID, l.ID}]++
	}
	if p.adjust {
		p.ratings[home.ID], p.ratings[away.ID] = EloUpdate(p.Rating(home), p.Rating(away), res, p.kFactor)
	}
	return res, nil
}

func (p *Poisson) sample(lambda float64) int {
	goals := samplePoisson(p.rng, lambda)
	if !p.noBonus {
		goals += p.rng.Intn(2)
	}
	return goals
}

// samplePoisson draws from a Poisson distribution with mean lambda.
func samplePoisson(rng *rand.Rand, lambda float64) int {
	L := math.Exp(-lambda)
	prob := 1.0
	k := 0
	for prob > L {
		k++
		prob *= rng.Float64()
	}
	return k - 1
}
