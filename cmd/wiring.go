package main

import (
	"context"
	"io"

	"github.com/okian/rota/internal/adapters/prompt"
	"github.com/okian/rota/internal/adapters/repository"
	service "github.com/okian/rota/internal/app"
	"github.com/okian/rota/internal/config"
	"github.com/okian/rota/internal/domain/meeting"
	"github.com/okian/rota/internal/domain/roles"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

func openLedgerStore(cfg *config.Config) (repository.LedgerStore, error) {
	switch cfg.LedgerDriver {
	case config.LedgerSQLite:
		return repository.OpenSQLiteLedger(cfg.SQLitePath)
	default:
		return repository.NewCSVLedger(cfg.LedgerPath), nil
	}
}

func newNormalizer(cfg *config.Config) *roles.Normalizer {
	r := cfg.Roles
	return roles.New(
		roles.WithFairnessGroups(r.Fairness),
		roles.WithEligibilityGroups(r.Eligibility),
		roles.WithGroupedDisplay(r.GroupedDisplay...),
		roles.WithVariantToken(r.VariantToken),
		roles.WithSeparateVariantFairness(r.SeparateVariantFairness),
	)
}

func newPlanner(cfg *config.Config) *meeting.Structure {
	m := cfg.Meeting
	return meeting.New(meeting.Layout{
		TreasuresRows: m.TreasuresRows,
		ReadingRow:    m.ReadingRow,
		MinistryRows:  m.MinistryRows,
		LivingRows:    m.LivingRows,
		TopN: meeting.TopN{
			Chairman:  m.TopN.Chairman,
			Treasures: m.TopN.Treasures,
			Reading:   m.TopN.Reading,
			Ministry:  m.TopN.Ministry,
			Living:    m.TopN.Living,
		},
	})
}

// session is a loaded roster and ledger ready for a command.
type session struct {
	svc   *service.Service
	store repository.LedgerStore
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession loads the roster and history and builds the service.
// in and out are the interactive surface.
func openSession(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, opts ...service.Option) (*session, error) {
	loader := repository.NewRosterLoader(
		repository.WithNameColumn(cfg.Roster.Name),
		repository.WithActiveColumn(cfg.Roster.Active),
		repository.WithGenderColumn(cfg.Roster.Gender),
		repository.WithModifierSuffix(cfg.Roster.ModifierSuffix),
		repository.WithLogger(logger.Get()),
	)
	roster, err := loader.Load(ctx, cfg.RosterPath)
	if err != nil {
		return nil, err
	}

	store, err := openLedgerStore(cfg)
	if err != nil {
		return nil, err
	}
	history, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	p, err := prompt.New(cfg.Prompt, in, out)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	base := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithMetrics(metrics.Global()),
		service.WithNormalizer(newNormalizer(cfg)),
		service.WithPlanner(newPlanner(cfg)),
		service.WithPrompter(p),
		service.WithOutput(out),
		service.WithStore(store),
		service.WithOverflow(cfg.Meeting.Overflow),
		service.WithEmptySkips(cfg.Meeting.EmptySkips),
		service.WithRecentLimit(cfg.Roles.RecentLimit),
	}
	svc := service.New(roster, history, append(base, opts...)...)

	logger.Get().Debug(ctx, "session opened",
		logger.String("run_id", svc.RunID()),
		logger.Int("people", roster.Len()),
		logger.Int("history", len(history)),
		logger.String("ledger_driver", cfg.LedgerDriver),
	)
	return &session{svc: svc, store: store}, nil
}

func writeMetrics(ctx context.Context, path string) {
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Get().Warn(ctx, "metrics textfile not written", logger.String("path", path), logger.Error(err))
	}
}
