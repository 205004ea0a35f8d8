package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/grassrootshq/matchday/internal/config"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/domain/player"
	"github.com/grassrootshq/matchday/internal/infrastructure/repository/memory"
	"github.com/grassrootshq/matchday/internal/infrastructure/repository/postgres"
	"github.com/grassrootshq/matchday/internal/interfaces/httpapi"
	idgen "github.com/grassrootshq/matchday/internal/platform/id"
	"github.com/grassrootshq/matchday/internal/usecase"
)

type repositories struct {
	players  player.Repository
	fixtures match.Repository
	lineups  match.LineupRepository
	squads   match.SquadRepository
	awards   match.AwardRepository
}

// NewHTTPServer builds the fixture backend server. The returned cleanup
// releases the storage connection and must run after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	idGen := idgen.NewRandomGenerator()
	rosterSvc := usecase.NewRosterService(repos.players, idGen)
	fixtureSvc := usecase.NewFixtureService(
		repos.fixtures,
		repos.lineups,
		repos.squads,
		repos.awards,
		repos.players,
		idGen,
	)

	defaultTeamID := cfg.TeamID
	if defaultTeamID == "" {
		defaultTeamID = memory.SeedTeamID
	}

	handler := httpapi.NewHandler(rosterSvc, fixtureSvc, defaultTeamID, logger)
	router := httpapi.NewRouter(handler, cfg.SessionSecret, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanupErr := cleanup(context.Background())
		if cleanupErr != nil {
			return nil, nil, fmt.Errorf("http server addr cannot be empty (cleanup: %v)", cleanupErr)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config) (repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return repositories{
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			fixtures: memory.NewFixtureRepository(),
			lineups:  memory.NewLineupRepository(),
			squads:   memory.NewSquadRepository(),
			awards:   memory.NewAwardRepository(),
		}, noop, nil
	case config.StorageDriverPostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		return repositories{
			players:  postgres.NewPlayerRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			lineups:  postgres.NewLineupRepository(db),
			squads:   postgres.NewSquadRepository(db),
			awards:   postgres.NewAwardRepository(db),
		}, func(context.Context) error { return db.Close() }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	attrs := []attribute.KeyValue{attribute.String("db.system", "postgresql")}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		attrs = append(attrs, attribute.String("db.name", name))
	}

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attrs...),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
