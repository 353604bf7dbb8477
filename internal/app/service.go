// Package service runs meeting assignment: for each date it walks the
// planned slots, ranks and selects a person per slot, commits the choice to
// the ledger and checkpoints the ledger before moving on.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rota/internal/adapters/prompt"
	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/dedupe"
	"github.com/okian/rota/internal/domain/ledger"
	"github.com/okian/rota/internal/domain/meeting"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/ranking"
	"github.com/okian/rota/internal/domain/roles"
	"github.com/okian/rota/internal/domain/scoring"
	"github.com/okian/rota/internal/domain/selection"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

// Metrics receives run counters.
type Metrics interface {
	RecordSlot(outcome string)
	RecordInvalidAnswer()
	RecordDateProcessed()
	RecordLedgerAppend(total int)
	RecordCandidatesRanked(group string, n int)
	RecordCheckpoint(durationMs float64, err error)
	UpdateRosterSize(n int)
	UpdateLedgerRecords(n int)
}

// Planner turns a program week into ordered slots.
type Planner interface {
	Plan(w meeting.Week) []meeting.Slot
	Labels(overflow bool) []string
}

// Prompter obtains operator answers.
type Prompter = selection.Prompter

// Store persists the full ledger.
type Store interface {
	Save(ctx context.Context, records []model.HistoryRecord) error
}

// Sink receives the final assignment table.
type Sink interface {
	Write(ctx context.Context, table *model.AssignmentTable) error
}

// SlotState is the resolution state of one slot.
type SlotState int

// Slot states.
const (
	SlotPending SlotState = iota
	SlotResolving
	SlotCommitted
	SlotSkipped
)

func (s SlotState) String() string {
	switch s {
	case SlotPending:
		return "pending"
	case SlotResolving:
		return "resolving"
	case SlotCommitted:
		return "committed"
	case SlotSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records how one slot was resolved.
type Outcome struct {
	Date  time.Time
	Label string
	Role  string
	Name  string
	State SlotState
}

// Result is the output of a run.
type Result struct {
	Table    *model.AssignmentTable
	Outcomes []Outcome
	// Persisted lists the dates whose checkpoint succeeded.
	Persisted []time.Time
}

const (
	genderPrompt   = "Assign to Varón (V), Mujer (M), or skip? [V/M/skip]: "
	genderInvalid  = "Invalid input. Type 'V','M','skip' or press Enter to skip."
	overflowPrompt = "Is there an auxiliary room on %s? [y/N]: "
)

// Service assigns meeting roles. It is single-threaded: one date, one slot
// and one prompt at a time.
type Service struct {
	roster  *model.Roster
	ledger  *ledger.Ledger
	roles   *roles.Normalizer
	ranker  *ranking.Ranker
	planner Planner

	prompter Prompter
	selector *selection.Protocol
	out      io.Writer

	store Store
	sink  Sink

	overflow    bool
	emptySkips  bool
	recentLimit int
	runID       string

	logger  logger.Logger
	metrics Metrics
}

// New constructs a Service over roster and the loaded history.
func New(roster *model.Roster, history []model.HistoryRecord, opts ...Option) *Service {
	s := &Service{
		roster:      roster,
		roles:       roles.New(),
		out:         os.Stdout,
		recentLimit: 3,
		runID:       uuid.NewString(),
		metrics:     metrics.Global(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))
	if s.prompter == nil {
		s.prompter = prompt.NewLinePrompter(os.Stdin, s.out)
	}

	s.ledger = ledger.New(s.roles, history)
	s.ranker = ranking.New(s.roles, scoring.NewRecencyScorer(s.ledger, s.roles))
	s.selector = selection.New(s.prompter,
		selection.WithOutput(s.out),
		selection.WithHistory(s.ledger),
		selection.WithRecentLimit(s.recentLimit),
		selection.WithRecorder(s.metrics),
	)

	s.metrics.UpdateRosterSize(roster.Len())
	s.metrics.UpdateLedgerRecords(s.ledger.Len())
	return s
}

// RunID identifies this run in logs.
func (s *Service) RunID() string {
	return s.runID
}

// Ledger exposes the in-memory history.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

// Run assigns every week in order. The ledger is saved after each date; a
// failed save halts the run with the earlier dates already persisted.
func (s *Service) Run(ctx context.Context, weeks []meeting.Week) (*Result, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if s.planner == nil {
		return nil, fmt.Errorf("no meeting planner configured")
	}

	days := make([]time.Time, len(weeks))
	for i, w := range weeks {
		days[i] = w.Date
	}
	res := &Result{Table: model.NewAssignmentTable(s.planner.Labels(s.overflow), days)}

	s.logger.Info(ctx, "assignment run started",
		logger.Int("dates", len(weeks)),
		logger.Int("roster", s.roster.Len()),
		logger.Int("ledger", s.ledger.Len()),
	)

	for _, w := range weeks {
		outcomes, err := s.assignDate(ctx, w, res.Table)
		res.Outcomes = append(res.Outcomes, outcomes...)
		if err != nil {
			return res, err
		}
		if err := s.checkpoint(ctx, w.Date); err != nil {
			return res, err
		}
		res.Persisted = append(res.Persisted, w.Date)
	}

	if s.sink != nil {
		if err := s.sink.Write(ctx, res.Table); err != nil {
			return res, fmt.Errorf("%w: %w", ErrOutput, err)
		}
	}
	s.logger.Info(ctx, "assignment run finished", logger.Int("ledger", s.ledger.Len()))
	return res, nil
}

func (s *Service) assignDate(ctx context.Context, w meeting.Week, table *model.AssignmentTable) ([]Outcome, error) {
	slots := s.planner.Plan(w)
	today := dedupe.New(dedupe.WithCapacity(len(slots)))
	log := s.logger.With(logger.Date("date", w.Date))
	log.Debug(ctx, "date planned", logger.Int("slots", len(slots)))

	mirror, err := s.askOverflow(ctx, w.Date, slots)
	if err != nil {
		return nil, err
	}

	var outcomes []Outcome
	for _, slot := range slots {
		o, err := s.resolve(ctx, w.Date, slot, today, table)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, o)

		if !mirror || !slot.Mirrorable {
			continue
		}
		o, err = s.resolve(ctx, w.Date, slot.Mirror(s.roles.Variant(slot.Role)), today, table)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, o)
	}
	log.Info(ctx, "date assigned", logger.Int("assigned", today.Size()), logger.Any("names", today.Names()))
	return outcomes, nil
}

// askOverflow asks once per date, and only when a slot can be mirrored.
func (s *Service) askOverflow(ctx context.Context, date time.Time, slots []meeting.Slot) (bool, error) {
	if !s.overflow {
		return false, nil
	}
	mirrorable := false
	for _, slot := range slots {
		if slot.Mirrorable {
			mirrorable = true
			break
		}
	}
	if !mirrorable {
		return false, nil
	}
	ans, err := s.selector.Ask(ctx, selection.Question{
		Prompt:  fmt.Sprintf(overflowPrompt, dates.Format(date)),
		Options: []string{"y", "yes", "n", "no"},
		Default: "n",
	})
	if err != nil {
		return false, err
	}
	return ans == "y" || ans == "yes", nil
}

func (s *Service) resolve(ctx context.Context, date time.Time, slot meeting.Slot, today *dedupe.Set, table *model.AssignmentTable) (Outcome, error) {
	o := Outcome{Date: date, Label: slot.Label, Role: slot.Role, State: SlotPending}
	log := s.logger.With(logger.Date("date", date), logger.String("slot", slot.Label), logger.String("role", slot.Role))

	o.State = SlotResolving
	gender := slot.Gender
	if slot.AskGender {
		fmt.Fprintf(s.out, "\n=== %s on %s ===\nTitle: %s\n", slot.Label, dates.Format(date), slot.Text) //nolint:errcheck
		ans, err := s.selector.Ask(ctx, selection.Question{
			Prompt:  genderPrompt,
			Options: []string{string(model.GenderMale), string(model.GenderFemale), selection.SkipToken},
			Default: selection.SkipToken,
			Invalid: genderInvalid,
		})
		if err != nil {
			return o, err
		}
		if ans == selection.SkipToken {
			o.State = SlotSkipped
			s.metrics.RecordSlot(metrics.OutcomeAborted)
			log.Info(ctx, "slot skipped at gender choice")
			return o, nil
		}
		gender = model.ParseGender(ans)
	}

	key := s.roles.Resolve(slot.Role)
	candidates := s.ranker.Rank(s.roster, ranking.Request{
		Role:     slot.Role,
		Date:     date,
		Excluded: today,
		TopN:     slot.TopN,
		Gender:   gender,
	})
	s.metrics.RecordCandidatesRanked(key.Fairness, len(candidates))

	req := selection.Request{
		Label:      slot.Label,
		Date:       date,
		Text:       slot.Text,
		Candidates: candidates,
		EmptySkips: s.emptySkips,
	}
	if s.roles.Grouped(slot.Role) {
		req.Group = key.Fairness
	}
	choice, err := s.selector.Select(ctx, req)
	if err != nil {
		return o, err
	}

	if choice.Skipped {
		o.State = SlotSkipped
		if choice.Empty {
			s.metrics.RecordSlot(metrics.OutcomeEmpty)
			log.Info(ctx, "no eligible candidates")
		} else {
			s.metrics.RecordSlot(metrics.OutcomeSkipped)
			log.Info(ctx, "slot skipped")
		}
		return o, nil
	}

	today.SeenAndRecord(choice.Name)
	s.ledger.Append(choice.Name, slot.Role, date)
	table.Set(slot.Label, date, choice.Name)
	o.Name = choice.Name
	o.State = SlotCommitted
	s.metrics.RecordSlot(metrics.OutcomeCommitted)
	s.metrics.RecordLedgerAppend(s.ledger.Len())
	log.Info(ctx, "slot committed", logger.String("name", choice.Name))
	return o, nil
}

func (s *Service) checkpoint(ctx context.Context, date time.Time) error {
	start := time.Now()
	err := s.store.Save(ctx, s.ledger.Records())
	s.metrics.RecordCheckpoint(float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		s.logger.Error(ctx, "checkpoint failed", logger.Date("date", date), logger.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrCheckpoint, dates.Format(date), err)
	}
	s.metrics.RecordDateProcessed()
	fmt.Fprintf(s.out, "\nSaved partial progress after finishing assignments for %s.\n", dates.Format(date)) //nolint:errcheck
	s.logger.Debug(ctx, "checkpoint saved", logger.Date("date", date), logger.Int("records", s.ledger.Len()))
	return nil
}

// Rank ranks candidates for role on date without prompting. People named in
// exclude are left out, as if already placed that day.
func (s *Service) Rank(role string, date time.Time, topN int, gender model.Gender, exclude ...string) []ranking.Candidate {
	return s.ranker.Rank(s.roster, ranking.Request{
		Role:     role,
		Date:     date,
		Excluded: dedupe.New(dedupe.WithNames(exclude...)),
		TopN:     topN,
		Gender:   gender,
	})
}

// Person looks up name in the roster.
func (s *Service) Person(name string) (model.Person, bool) {
	return s.roster.Lookup(name)
}

// History returns the fairness group of role and the most recent records
// person has in it.
func (s *Service) History(person, role string, limit int) (string, []ledger.Entry) {
	group := s.roles.FairnessGroup(role)
	return group, s.ledger.RecentGroupRecords(person, group, limit)
}
