// Package store archives simulated seasons in Postgres. It is write-only:
// a season is never reloaded from the archive.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/utakatalp/league-simulator/internal/league"
	"github.com/utakatalp/league-simulator/internal/team"
)

// Store wraps a Postgres connection.
type Store struct {
	DB *sql.DB
}

// Open connects to Postgres using connStr and verifies the connection.
func Open(ctx context.Context, connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// verify early
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS seasons (
		id           UUID PRIMARY KEY,
		started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		rounds       INT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS season_teams (
		season_id    UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
		team_id      INT  NOT NULL,
		name         TEXT NOT NULL,
		rating       DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (season_id, team_id)
	);`,
	`CREATE TABLE IF NOT EXISTS fixtures (
		season_id    UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
		round        INT  NOT NULL,
		home_team    INT  NOT NULL,
		away_team    INT  NOT NULL,
		home_goals   INT  NOT NULL,
		away_goals   INT  NOT NULL,
		PRIMARY KEY (season_id, home_team, away_team)
	);`,
	`CREATE TABLE IF NOT EXISTS standings (
		season_id     UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
		position      INT  NOT NULL,
		team_id       INT  NOT NULL,
		win           INT  NOT NULL,
		lose          INT  NOT NULL,
		draw          INT  NOT NULL,
		points        INT  NOT NULL,
		goals_for     INT  NOT NULL,
		goals_against INT  NOT NULL,
		PRIMARY KEY (season_id, team_id)
	);`,
}

// Migrate creates the archive tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, q := range migrations {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// BeginSeason registers a new season with its teams and returns an archive
// that records each round as it is played.
func (s *Store) BeginSeason(ctx context.Context, teams []team.Team) (*Archive, error) {
	id := uuid.New()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin season tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO seasons (id) VALUES ($1)`, id); err != nil {
		return nil, fmt.Errorf("inserting season %s: %w", id, err)
	}
	const q = `
    INSERT INTO season_teams (season_id, team_id, name, rating)
    VALUES ($1, $2, $3, $4)
    `
	for _, t := range teams {
		if _, err := tx.ExecContext(ctx, q, id, t.ID, t.Name, t.Rating); err != nil {
			return nil, fmt.Errorf("inserting team %d (%s): %w", t.ID, t.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit season tx: %w", err)
	}
	return &Archive{store: s, id: id}, nil
}

var _ league.Observer = (*Archive)(nil)

// Archive records the rounds of one season.
type Archive struct {
	store *Store
	id    uuid.UUID
}

// ID returns the season's archive ID.
func (a *Archive) ID() uuid.UUID {
	return a.id
}

// RoundPlayed stores the round's fixtures and replaces the standings
// snapshot in one transaction.
func (a *Archive) RoundPlayed(ctx context.Context, snap league.Snapshot) error {
	tx, err := a.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round tx: %w", err)
	}
	defer tx.Rollback()

	const insertFixture = `
    INSERT INTO fixtures (season_id, round, home_team, away_team, home_goals, away_goals)
    VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, r := range snap.Results {
		if _, err := tx.ExecContext(ctx, insertFixture,
			a.id, snap.Round, r.Home.ID, r.Away.ID, r.HomeGoals, r.AwayGoals,
		); err != nil {
			return fmt.Errorf("saving fixture %s: %w", r.ScoreLine(), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM standings WHERE season_id = $1`, a.id); err != nil {
		return fmt.Errorf("clearing standings: %w", err)
	}
	const insertRow = `
    INSERT INTO standings (season_id, position, team_id, win, lose, draw, points, goals_for, goals_against)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	for i, row := range snap.Standings {
		if _, err := tx.ExecContext(ctx, insertRow,
			a.id, i+1, row.Team.ID,
			row.Wins, row.Losses, row.Draws, row.Points,
			row.GoalsFor, row.GoalsAgainst,
		); err != nil {
			return fmt.Errorf("saving standing of %s: %w", row.Team, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE seasons SET rounds = $1 WHERE id = $2`, snap.Round, a.id); err != nil {
		return fmt.Errorf("updating season %s: %w", a.id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round tx: %w", err)
	}
	return nil
}

// Standings returns the archived table of a season, in position order.
func (s *Store) Standings(ctx context.Context, seasonID uuid.UUID) ([]league.Row, error) {
	const q = `
    SELECT
      st.team_id,
      t.name,
      t.rating,
      st.win,
      st.lose,
      st.draw,
      st.points,
      st.goals_for,
      st.goals_against
    FROM standings st
    JOIN season_teams t ON t.season_id = st.season_id AND t.team_id = st.team_id
    WHERE st.season_id = $1
    ORDER BY st.position
    `
	rows, err := s.DB.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying standings: %w", err)
	}
	defer rows.Close()

	var table []league.Row
	for rows.Next() {
		var r league.Row
		if err := rows.Scan(
			&r.Team.ID,
			&r.Team.Name,
			&r.Team.Rating,
			&r.Wins,
			&r.Losses,
			&r.Draws,
			&r.Points,
			&r.GoalsFor,
			&r.GoalsAgainst,
		); err != nil {
			return nil, fmt.Errorf("scanning standings row: %w", err)
		}
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		table = append(table, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating standings rows: %w", err)
	}
	return table, nil
}

// FixtureCount returns the number of archived fixtures of a season.
func (s *Store) FixtureCount(ctx context.Context, seasonID uuid.UUID) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM fixtures WHERE season_id = $1`, seasonID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting fixtures: %w", err)
	}
	return n, nil
}

// DeleteSeason removes a season and everything archived under it.
func (s *Store) DeleteSeason(ctx context.Context, seasonID uuid.UUID) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, seasonID); err != nil {
		return fmt.Errorf("deleting season %s: %w", seasonID, err)
	}
	return nil
}
