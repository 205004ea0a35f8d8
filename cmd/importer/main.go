package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/grassrootshq/matchday/external/fixtureapi"
	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/config"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/matchstore"
	"github.com/grassrootshq/matchday/internal/platform/blob"
	idgen "github.com/grassrootshq/matchday/internal/platform/id"
	"github.com/grassrootshq/matchday/internal/platform/logging"
	"github.com/grassrootshq/matchday/internal/platform/resilience"
)

func main() {
	inputPath := flag.String("input", "", "path to a JSON file holding an array of match records")
	actor := flag.String("actor", "importer", "actor recorded as creator of imported matches")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if *inputPath == "" {
		logger.Error("missing -input flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	records, err := readRecords(*inputPath)
	if err != nil {
		logger.Error("read import file", "path", *inputPath, "error", err)
		os.Exit(1)
	}

	selector, err := buildSelector(cfg, *actor, logger)
	if err != nil {
		logger.Error("build match store", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	added, skipped, err := selector.BulkImportMatches(ctx, records)
	if err != nil {
		logger.Error("bulk import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("bulk import finished",
		"imported", added,
		"skipped", skipped,
		"mode", string(selector.Mode()),
		"data_dir", cfg.LocalDataDir,
	)
}

func readRecords(path string) ([]match.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []match.Record
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode match records: %w", err)
	}

	return records, nil
}

func buildSelector(cfg config.Config, actor string, logger *slog.Logger) (*matchstore.Selector, error) {
	blobs, err := blob.NewFileStore(cfg.LocalDataDir)
	if err != nil {
		return nil, err
	}

	gen := idgen.NewRandomGenerator()
	nextID := func() string {
		id, err := gen.NewID()
		if err != nil {
			return fmt.Sprintf("match-%d", time.Now().UnixNano())
		}
		return id
	}

	local := matchstore.NewLocalStore(blobs, audit.NewEngine(nextID), nextID, time.Now, actor)

	var remote matchstore.Store
	if cfg.RemoteEnabled {
		client := fixtureapi.NewClient(fixtureapi.ClientConfig{
			BaseURL:       cfg.RemoteBaseURL,
			SessionSecret: cfg.SessionSecret,
			ActorID:       cfg.RemoteActorID,
			ActorRoles:    splitRoles(cfg.RemoteActorRoles),
			Timeout:       cfg.RemoteTimeout,
			MaxRetries:    cfg.RemoteMaxRetries,
			Logger:        logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RemoteCircuitEnabled,
				FailureThreshold: cfg.RemoteCircuitFailureCount,
				OpenTimeout:      cfg.RemoteCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RemoteCircuitHalfOpenMax,
			},
		})
		remote = matchstore.NewRemoteStore(client, cfg.TeamID, cfg.HydrationWorkers)
	}

	return matchstore.NewSelector(matchstore.SelectorConfig{
		RemoteEnabled: cfg.RemoteEnabled,
		TeamID:        cfg.TeamID,
		Remote:        remote,
		Local:         local,
		Logger:        logger,
	}), nil
}

func splitRoles(raw string) []string {
	var roles []string
	for _, role := range strings.Split(raw, ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
