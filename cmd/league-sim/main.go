// Command league-sim simulates a double round-robin football league.
//
// Usage:
//
//	league-sim season --teams "Arsenal:1620,Chelsea:1580,Spurs" --seed 7
//	league-sim round --rounds 3
//	league-sim odds --runs 5000
//	league-sim schedule
//	league-sim migrate
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/utakatalp/league-simulator/internal/config"
	"github.com/utakatalp/league-simulator/internal/league"
	"github.com/utakatalp/league-simulator/internal/match"
	"github.com/utakatalp/league-simulator/internal/render"
	"github.com/utakatalp/league-simulator/internal/schedule"
	"github.com/utakatalp/league-simulator/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// flags shared by every command; empty values fall back to the config.
type flags struct {
	teams string
	seed  int64
	eloK  float64
	db    string
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("league-sim failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "league-sim",
		Short:         "Double round-robin league simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.teams, "teams", "", "Comma separated teams, Name[:rating] (default LEAGUE_TEAMS)")
	root.PersistentFlags().Int64Var(&f.seed, "seed", 0, "Simulator seed (default LEAGUE_SEED)")
	root.PersistentFlags().Float64Var(&f.eloK, "elo", 0, "Elo K factor, 0 keeps ratings fixed (default LEAGUE_ELO_K)")
	root.PersistentFlags().StringVar(&f.db, "db", "", "Postgres URL of the season archive (default LEAGUE_DATABASE_URL)")

	root.AddCommand(seasonCmd(&f))
	root.AddCommand(roundCmd(&f))
	root.AddCommand(oddsCmd(&f))
	root.AddCommand(scheduleCmd(&f))
	root.AddCommand(migrateCmd(&f))
	return root
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.teams != "" {
		teams, err := config.ParseTeams(f.teams)
		if err != nil {
			return nil, fmt.Errorf("--teams: %w", err)
		}
		cfg.Teams = teams
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("elo") {
		cfg.EloK = f.eloK
	}
	if f.db != "" {
		cfg.DatabaseURL = f.db
	}
	logger = setupLogger(cmd.ErrOrStderr(), cfg)
	return cfg, nil
}

func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn", "warning":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func poissonOptions(cfg *config.Config) []match.PoissonOption {
	var opts []match.PoissonOption
	if cfg.EloK > 0 {
		opts = append(opts, match.WithElo(cfg.EloK))
	}
	return opts
}

func newSimulator(cfg *config.Config) match.Simulator {
	return match.NewPoisson(cfg.Seed, poissonOptions(cfg)...)
}

// simulatorFactory gives each odds run a fresh simulator seeded from the
// configured seed plus the run number.
func simulatorFactory(cfg *config.Config) league.SimulatorFactory {
	seed, opts := cfg.Seed, poissonOptions(cfg)
	return func(run int) match.Simulator {
		return match.NewPoisson(seed+int64(run), opts...)
	}
}

// newLeague builds the league and, if a database is configured, attaches
// the season archive. The returned cleanup closes the archive connection.
func newLeague(ctx context.Context, cfg *config.Config) (*league.League[*league.FootballSeason], func(), error) {
	opts := []league.Option{league.WithLogger(logger)}
	cleanup := func() {}

	if cfg.DatabaseURL != "" {
		st, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { st.Close() }
		if err := st.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		archive, err := st.BeginSeason(ctx, cfg.Teams)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("archiving season", "season_id", archive.ID())
		opts = append(opts, league.WithObserver(archive))
	}

	l, err := league.NewFootball(cfg.Teams, schedule.DoubleRoundRobin{}, newSimulator(cfg), opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return l, cleanup, nil
}

// --------------------------------------------------------------------------
// season command
// --------------------------------------------------------------------------

func seasonCmd(f *flags) *cobra.Command {
	var showFixtures bool
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Play a full season and print the final table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			l, cleanup, err := newLeague(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			champ, err := l.PlaySeason(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := render.Standings(out, l.Round(), l.Standings()); err != nil {
				return err
			}
			if showFixtures {
				fmt.Fprintln(out)
				if err := render.Fixtures(out, l.StandingTeams(), l.Fixture); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "\nChampion: %s (%d pts)\n", champ, champ.Points())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showFixtures, "fixtures", true, "Print the fixture grid")
	return cmd
}

// --------------------------------------------------------------------------
// round command
// --------------------------------------------------------------------------

func roundCmd(f *flags) *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Play rounds one at a time, printing results and standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			l, cleanup, err := newLeague(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for i := 0; rounds <= 0 || i < rounds; i++ {
				before := len(l.Results())
				status, err := l.PlayRound(ctx)
				if err != nil {
					return err
				}
				if status == league.SeasonComplete {
					fmt.Fprintln(out, "Season complete.")
					break
				}
				fmt.Fprintf(out, "Round %d results:\n", l.Round())
				if err := render.Results(out, l.Results()[before:]); err != nil {
					return err
				}
				if err := render.Standings(out, l.Round(), l.Standings()); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			logger.Info("rounds played", "round", l.Round(), "of", l.TotalRounds(), "phase", l.Phase())
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 1, "Rounds to play, 0 plays to the end")
	return cmd
}

// --------------------------------------------------------------------------
// odds command
// --------------------------------------------------------------------------

func oddsCmd(f *flags) *cobra.Command {
	var runs int
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Estimate championship odds by simulating many seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("runs") {
				cfg.OddsRuns = runs
			}
			preds, err := league.ChampionshipOdds(cmd.Context(), cfg.Teams, schedule.DoubleRoundRobin{}, simulatorFactory(cfg), cfg.OddsRuns)
			if err != nil {
				return err
			}
			return render.Odds(cmd.OutOrStdout(), preds)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 1000, "Seasons to simulate (default LEAGUE_ODDS_RUNS)")
	return cmd
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the double round-robin schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			s, err := schedule.DoubleRoundRobin{}.Schedule(cfg.Teams)
			if err != nil {
				return err
			}
			return render.Schedule(cmd.OutOrStdout(), s)
		},
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the season archive tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("LEAGUE_DATABASE_URL or --db is required")
			}
			st, err := store.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
