package selection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/okian/rota/internal/domain/ledger"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

// scripted answers questions from a fixed list and reports io.EOF after it.
type scripted struct {
	answers []string
	asked   []string
}

func (s *scripted) Ask(_ context.Context, q string) (string, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// interrupted answers but cancels the run while the answer is typed.
type interrupted struct {
	cancel context.CancelFunc
}

func (i interrupted) Ask(context.Context, string) (string, error) {
	i.cancel()
	return "1", nil
}

type counter struct{ n int }

func (c *counter) RecordInvalidAnswer() { c.n++ }

type fakeHistory map[string][]ledger.Entry

func (f fakeHistory) RecentGroupRecords(person, _ string, limit int) []ledger.Entry {
	out := f[person]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var day = time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)

func candidates(names ...string) []ranking.Candidate {
	out := make([]ranking.Candidate, len(names))
	for i, n := range names {
		out[i] = ranking.Candidate{Person: model.Person{Name: n}, Score: float64(10 - i), LastDate: day.AddDate(0, 0, -7*(10-i))}
	}
	return out
}

func TestSelect(t *testing.T) {
	Convey("Given a protocol over a scripted prompter", t, func() {
		var out bytes.Buffer
		rec := &counter{}
		ctx := context.Background()

		Convey("When the candidate list is empty", func() {
			pr := &scripted{answers: []string{"1"}}
			p := New(pr, WithOutput(&out), WithRecorder(rec))
			res, err := p.Select(ctx, Request{Label: "LECTURA", Date: day})

			Convey("Then it skips without prompting", func() {
				So(err, ShouldBeNil)
				So(res.Skipped, ShouldBeTrue)
				So(res.Empty, ShouldBeTrue)
				So(pr.asked, ShouldBeEmpty)
				So(out.String(), ShouldContainSubstring, "No eligible candidates for LECTURA on 12/05/2025. Skipping.")
			})
		})

		Convey("When the operator picks an index after invalid answers", func() {
			pr := &scripted{answers: []string{"0", "abc", "", "4", " 2 "}}
			p := New(pr, WithOutput(&out), WithRecorder(rec))
			res, err := p.Select(ctx, Request{Label: "TESOROS", Date: day, Text: "1. Tema", Candidates: candidates("Ana", "Beto", "Carlos")})

			Convey("Then each invalid answer is rejected and the pick wins", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, Result{Name: "Beto"})
				So(rec.n, ShouldEqual, 4)
				So(pr.asked, ShouldHaveLength, 5)
				So(pr.asked[0], ShouldEqual, "Choose 1..3 or 'skip': ")
				So(out.String(), ShouldContainSubstring, "Invalid input! Please type a number from 1..3 or 'skip'.")
				So(out.String(), ShouldContainSubstring, "1) Ana (score=10.00, last=")
				So(out.String(), ShouldContainSubstring, "Assignment: 1. Tema")
			})
		})

		Convey("When the operator skips", func() {
			pr := &scripted{answers: []string{"SKIP"}}
			p := New(pr, WithOutput(&out))
			res, err := p.Select(ctx, Request{Label: "NVC1", Date: day, Candidates: candidates("Ana")})

			Convey("Then no name is returned", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, Result{Skipped: true})
			})
		})

		Convey("When the slot accepts the empty answer as skip", func() {
			pr := &scripted{answers: []string{""}}
			p := New(pr, WithOutput(&out))
			res, err := p.Select(ctx, Request{Label: "NVC1", Date: day, Candidates: candidates("Ana"), EmptySkips: true})

			Convey("Then the empty answer skips", func() {
				So(err, ShouldBeNil)
				So(res.Skipped, ShouldBeTrue)
			})
		})

		Convey("When a candidate never had the role", func() {
			pr := &scripted{answers: []string{"1"}}
			p := New(pr, WithOutput(&out))
			c := ranking.Candidate{Person: model.Person{Name: "Nuevo"}, Score: 6500}
			_, err := p.Select(ctx, Request{Label: "LECTURA", Date: day, Candidates: []ranking.Candidate{c}})

			Convey("Then the last date shows none", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "1) Nuevo (score=6500.00, last=none)")
			})
		})

		Convey("When the role is grouped", func() {
			h := fakeHistory{"Ana": {
				{Date: day.AddDate(0, 0, -7), Part: "Discurso"},
				{Date: day.AddDate(0, 0, -14), Part: "Haga Revisitas"},
				{Date: day.AddDate(0, 0, -21), Part: "Discurso"},
				{Date: day.AddDate(0, 0, -28), Part: "Discurso"},
			}}
			pr := &scripted{answers: []string{"1"}}
			p := New(pr, WithOutput(&out), WithHistory(h))
			_, err := p.Select(ctx, Request{Label: "SMM1", Date: day, Group: "SMM", Candidates: candidates("Ana")})

			Convey("Then up to three recent records are listed", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "   Last SMM(n-1): 05/05/2025 (Discurso)")
				So(out.String(), ShouldContainSubstring, "   Last SMM(n-2): 28/04/2025 (Haga Revisitas)")
				So(out.String(), ShouldContainSubstring, "(n-3)")
				So(out.String(), ShouldNotContainSubstring, "(n-4)")
			})
		})

		Convey("When input closes mid-question", func() {
			pr := &scripted{answers: []string{"nope"}}
			p := New(pr, WithOutput(&out))
			_, err := p.Select(ctx, Request{Label: "EBC", Date: day, Candidates: candidates("Ana")})

			Convey("Then the protocol reports the closed prompt", func() {
				So(errors.Is(err, ErrPromptClosed), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			p := New(&scripted{answers: []string{"1"}}, WithOutput(&out))
			_, err := p.Select(cctx, Request{Label: "EBC", Date: day, Candidates: candidates("Ana")})

			Convey("Then the cancellation is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When the run is cancelled while an answer is typed", func() {
			cctx, cancel := context.WithCancel(ctx)
			p := New(interrupted{cancel: cancel}, WithOutput(&out))
			res, err := p.Select(cctx, Request{Label: "EBC", Date: day, Candidates: candidates("Ana")})

			Convey("Then the answer is dropped", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(res.Name, ShouldBeEmpty)
			})
		})
	})
}

func TestAsk(t *testing.T) {
	Convey("Given the gender question", t, func() {
		var out bytes.Buffer
		q := Question{Prompt: "[V/M/skip]: ", Options: []string{"V", "M", "skip"}, Default: "skip", Invalid: "Invalid input."}

		Convey("When the operator answers after a typo", func() {
			p := New(&scripted{answers: []string{"x", "v"}}, WithOutput(&out))
			got, err := p.Ask(context.Background(), q)

			Convey("Then the normalized option is returned", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, "v")
				So(out.String(), ShouldContainSubstring, "Invalid input.")
			})
		})

		Convey("When the operator presses enter", func() {
			p := New(&scripted{answers: []string{""}}, WithOutput(&out))
			got, err := p.Ask(context.Background(), q)

			Convey("Then the default applies", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, SkipToken)
			})
		})

		Convey("When there is no default", func() {
			p := New(&scripted{answers: []string{"", "yes"}}, WithOutput(&out))
			got, err := p.Ask(context.Background(), Question{Prompt: "? ", Options: []string{"yes", "no"}})

			Convey("Then the empty answer is rejected", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, "yes")
				So(out.String(), ShouldContainSubstring, "Type one of: yes, no.")
			})
		})
	})
}
