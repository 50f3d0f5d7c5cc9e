// Package league runs a double round-robin season: it plays the schedule one
// round at a time, merges each result into the team seasons, records the
// fixture and keeps the standings sorted.
package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/schedule"
	"github.com/utakatalp/league-simulator/internal/team"
)

var (
	// ErrNoTeams is returned when a season result is asked of an empty league.
	ErrNoTeams = errors.New("league has no teams")
	// ErrUnknownTeam is returned when the schedule names a team the league
	// was not built with.
	ErrUnknownTeam = errors.New("team not in league")
	// ErrMismatchedResult is returned when the simulator reports a result
	// for a different pairing than the one it was asked to play.
	ErrMismatchedResult = errors.New("result does not match fixture")
	// ErrObserver wraps an error returned by a round observer. The round
	// has already been committed when it is returned.
	ErrObserver = errors.New("round observer failed")
)

// Phase is the state of a season.
type Phase int

const (
	NotStarted Phase = iota
	MidSeason
	Complete
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case MidSeason:
		return "mid-season"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// RoundStatus tells the caller of PlayRound what happened.
type RoundStatus int

const (
	// RoundPlayed means the next round was played and committed.
	RoundPlayed RoundStatus = iota + 1
	// SeasonComplete means there was no round left to play. Nothing changed.
	SeasonComplete
)

// Snapshot describes a round that has just been committed.
type Snapshot struct {
	Round     int // rounds played so far, the committed one included
	Results   []match.Result
	Standings []Row
}

// Observer is notified after every committed round.
type Observer interface {
	RoundPlayed(ctx context.Context, snap Snapshot) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, snap Snapshot) error

func (f ObserverFunc) RoundPlayed(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

type options struct {
	logger    *slog.Logger
	observers []Observer
}

// Option configures a League.
type Option func(*options)

// WithLogger sets the logger used for round and season events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver adds an observer called after each committed round.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// League is a double round-robin season in progress.
//
// A League is not safe for concurrent use.
type League[S Season] struct {
	rules     Rules[S]
	sim       match.Simulator
	schedule  schedule.Schedule
	teams     []team.Team
	seasons   []S // standings order
	index     map[int]S
	fixtures  *Fixtures
	round     int
	log       *slog.Logger
	observers []Observer
}

// New wraps teams into seasons, in the order given, and asks scheduler for
// the season's schedule.
func New[S Season](
	rules Rules[S],
	teams []team.Team,
	scheduler schedule.Scheduler,
	sim match.Simulator,
	opts ...Option,
) (*League[S], error) {
	if rules == nil || scheduler == nil || sim == nil {
		return nil, errors.New("league: rules, scheduler and simulator are required")
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	l := &League[S]{
		rules:     rules,
		sim:       sim,
		teams:     slices.Clone(teams),
		seasons:   make([]S, 0, len(teams)),
		index:     make(map[int]S, len(teams)),
		fixtures:  NewFixtures(),
		log:       o.logger,
		observers: o.observers,
	}
	for _, t := range l.teams {
		if _, dup := l.index[t.Key()]; dup {
			return nil, fmt.Errorf("adding team %d (%s): %w", t.ID, t.Name, schedule.ErrDuplicateTeam)
		}
		s := rules.NewSeason(t)
		l.seasons = append(l.seasons, s)
		l.index[t.Key()] = s
	}

	sched, err := scheduler.Schedule(slices.Clone(l.teams))
	if err != nil {
		return nil, fmt.Errorf("scheduling season: %w", err)
	}
	l.schedule = sched
	return l, nil
}

// Round returns the number of rounds played so far.
func (l *League[S]) Round() int {
	return l.round
}

// TotalRounds returns the number of rounds in the schedule.
func (l *League[S]) TotalRounds() int {
	return l.schedule.Len()
}

// Schedule returns the season's schedule.
func (l *League[S]) Schedule() schedule.Schedule {
	return l.schedule
}

// Phase reports where the season stands. A league with an empty schedule
// is complete from the start.
func (l *League[S]) Phase() Phase {
	switch {
	case l.round >= l.schedule.Len():
		return Complete
	case l.round == 0:
		return NotStarted
	default:
		return MidSeason
	}
}

type played[S Season] struct {
	home, away S
	result     match.Result
}

// PlayRound plays the next round of the schedule.
//
// Every fixture of the round is simulated before any state changes; if the
// simulator fails the league is left exactly as it was. On success the
// results are merged, recorded, the round counter advances and the
// standings are re-sorted.
func (l *League[S]) PlayRound(ctx context.Context) (RoundStatus, error) {
	pairs, ok := l.schedule.Round(l.round)
	if !ok {
		return SeasonComplete, nil
	}

	batch := make([]played[S], 0, len(pairs))
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		home, ok := l.index[p.Home.Key()]
		if !ok {
			return 0, fmt.Errorf("round %d: %s: %w", l.round+1, p.Home, ErrUnknownTeam)
		}
		away, ok := l.index[p.Away.Key()]
		if !ok {
			return 0, fmt.Errorf("round %d: %s: %w", l.round+1, p.Away, ErrUnknownTeam)
		}

		r, err := l.sim.Play(ctx, p.Home, p.Away)
		if err != nil {
			return 0, fmt.Errorf("round %d: playing %s v %s: %w", l.round+1, p.Home, p.Away, err)
		}
		if r.Home.Key() != p.Home.Key() || r.Away.Key() != p.Away.Key() {
			return 0, fmt.Errorf("round %d: %s v %s got %s: %w",
				l.round+1, p.Home, p.Away, r.ScoreLine(), ErrMismatchedResult)
		}
		batch = append(batch, played[S]{home: home, away: away, result: r})
	}

	results := make([]match.Result, 0, len(batch))
	for _, b := range batch {
		l.rules.Merge(b.home, b.away, b.result)
		l.fixtures.Record(b.result.Home, b.result.Away, b.result)
		results = append(results, b.result)
	}
	l.round++
	l.sortStandings()

	if leader, ok := l.Leader(); ok {
		l.log.Debug("round played",
			"round", l.round,
			"of", l.schedule.Len(),
			"fixtures", len(results),
			"leader", leader.Row().String(),
		)
	}

	if len(l.observers) == 0 {
		return RoundPlayed, nil
	}
	snap := Snapshot{Round: l.round, Results: results, Standings: l.Standings()}
	for _, obs := range l.observers {
		if err := obs.RoundPlayed(ctx, snap); err != nil {
			return RoundPlayed, fmt.Errorf("round %d: %w: %w", l.round, ErrObserver, err)
		}
	}
	return RoundPlayed, nil
}

// PlaySeason plays every remaining round and returns the season ranked
// first. It may be called at any point; play resumes from the current
// round.
func (l *League[S]) PlaySeason(ctx context.Context) (S, error) {
	var zero S
	for {
		status, err := l.PlayRound(ctx)
		if err != nil {
			return zero, err
		}
		if status == SeasonComplete {
			break
		}
	}

	leader, ok := l.Leader()
	if !ok {
		return zero, ErrNoTeams
	}
	l.log.Info("season complete",
		"rounds", l.round,
		"fixtures", l.fixtures.Len(),
		"champion", leader.Team().Name,
	)
	return leader, nil
}

// sortStandings orders seasons by key, descending. Equal keys keep their
// previous relative order.
func (l *League[S]) sortStandings() {
	slices.SortStableFunc(l.seasons, func(a, b S) int {
		return CompareKeys(b.Key(), a.Key())
	})
}

// Leader returns the season currently ranked first.
func (l *League[S]) Leader() (S, bool) {
	if len(l.seasons) == 0 {
		var zero S
		return zero, false
	}
	return l.seasons[0], true
}

// Seasons returns the team seasons in standings order.
func (l *League[S]) Seasons() []S {
	return slices.Clone(l.seasons)
}

// Season returns the season of t.
func (l *League[S]) Season(t team.Team) (S, bool) {
	s, ok := l.index[t.Key()]
	return s, ok
}

// Teams returns the teams in the order the league was built with.
func (l *League[S]) Teams() []team.Team {
	return slices.Clone(l.teams)
}

// Standings returns one row per team in standings order.
func (l *League[S]) Standings() []Row {
	rows := make([]Row, len(l.seasons))
	for i, s := range l.seasons {
		rows[i] = s.Row()
	}
	return rows
}

// StandingTeams returns the teams in standings order.
func (l *League[S]) StandingTeams() []team.Team {
	out := make([]team.Team, len(l.seasons))
	for i, s := range l.seasons {
		out[i] = s.Team()
	}
	return out
}

// Fixture returns the result of home against away, if played.
func (l *League[S]) Fixture(home, away team.Team) (match.Result, bool) {
	return l.fixtures.Lookup(home, away)
}

// Results returns every played result in the order played.
func (l *League[S]) Results() []match.Result {
	return l.fixtures.Results()
}
