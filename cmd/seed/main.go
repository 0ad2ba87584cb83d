package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"devevents/config"
	"devevents/internal/domain"
	"devevents/internal/repository/migrations"
	"devevents/internal/repository/postgres"
	"devevents/internal/validation"
)

//go:embed events.json
var defaultDataset []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	app := &cli.App{
		Name:  "seed",
		Usage: "Load the event catalog into the database.",
		Commands: []*cli.Command{
			migrateCommand(cfg, logger),
			eventsCommand(cfg, logger),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func migrateCommand(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations.",
		Action: func(c *cli.Context) error {
			return migrations.Up(cfg.DBUrl, logger)
		},
	}
}

func eventsCommand(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Validate the dataset and upsert every event by slug.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "Read events from this JSON file instead of the built-in dataset."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Validate and report without writing."},
		},
		Action: func(c *cli.Context) error {
			raw := defaultDataset
			if path := c.String("file"); path != "" {
				b, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read dataset: %w", err)
				}
				raw = b
			}
			events, err := prepareDataset(raw)
			if err != nil {
				return err
			}
			logger.Info("dataset valid", "events", len(events))
			if c.Bool("dry-run") {
				for _, e := range events {
					fmt.Fprintf(c.App.Writer, "%s\t%s %s\n", e.Slug, e.Date, e.Time)
				}
				return nil
			}

			db, err := postgres.Open(c.Context, cfg.DBUrl, postgres.PoolConfig{MaxOpenConns: 2})
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrations.Up(cfg.DBUrl, logger); err != nil {
				return err
			}

			inserted, updated, err := upsertAll(c.Context, postgres.NewEventRepository(db), events)
			if err != nil {
				return err
			}
			logger.Info("seed complete", "inserted", inserted, "updated", updated)
			return nil
		},
	}
}

// prepareDataset decodes a JSON array of events and runs each through the same
// validation as the API. Every invalid entry is reported, not just the first.
func prepareDataset(raw []byte) ([]*domain.Event, error) {
	var inputs []domain.EventInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(inputs) == 0 {
		return nil, errors.New("dataset is empty")
	}

	events := make([]*domain.Event, 0, len(inputs))
	seen := make(map[string]int, len(inputs))
	var errs []error
	for i, in := range inputs {
		e, err := validation.PrepareEvent(in)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%q): %w", i, in.Title, err))
			continue
		}
		if j, dup := seen[e.Slug]; dup {
			errs = append(errs, fmt.Errorf("entry %d (%q): %w with entry %d", i, in.Title, domain.ErrDuplicateSlug, j))
			continue
		}
		seen[e.Slug] = i
		events = append(events, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return events, nil
}

func upsertAll(ctx context.Context, repo domain.EventRepository, events []*domain.Event) (inserted, updated int, err error) {
	now := time.Now().UTC()
	for _, e := range events {
		e.CreatedAt, e.UpdatedAt = now, now
		isNew, err := repo.UpsertBySlug(ctx, e)
		if err != nil {
			return inserted, updated, fmt.Errorf("upsert %s: %w", e.Slug, err)
		}
		if isNew {
			inserted++
		} else {
			updated++
		}
	}
	return inserted, updated, nil
}

