package ranking_test

import (
	"testing"
	"time"

	"github.com/okian/rota/internal/domain/dedupe"
	"github.com/okian/rota/internal/domain/ledger"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/ranking"
	"github.com/okian/rota/internal/domain/roles"
	"github.com/okian/rota/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

var today = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func student(name string, g model.Gender, active bool) model.Person {
	return model.Person{
		Name:     name,
		Active:   active,
		Gender:   g,
		Eligible: map[string]bool{"Estudiante": true, "Presidencia": true},
	}
}

func setup(people []model.Person, history []model.HistoryRecord) (*ranking.Ranker, *model.Roster, *ledger.Ledger) {
	n := roles.New(
		roles.WithFairnessGroups(map[string][]string{"SMM": {"Discurso", "Haga Revisitas"}}),
		roles.WithEligibilityGroups(map[string][]string{"Estudiante": {"Lectura", "Discurso", "Haga Revisitas"}}),
	)
	l := ledger.New(n, history)
	roster, err := model.NewRoster(people)
	if err != nil {
		panic(err)
	}
	return ranking.New(n, scoring.NewRecencyScorer(l, n)), roster, l
}

func names(cs []ranking.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Person.Name
	}
	return out
}

func TestRank_ScenarioA(t *testing.T) {
	Convey("Given Ana (M, never assigned) and Beto (V, read 10 weeks ago)", t, func() {
		r, roster, _ := setup(
			[]model.Person{student("Ana", model.GenderFemale, true), student("Beto", model.GenderMale, true)},
			[]model.HistoryRecord{{Name: "Beto", Part: "Lectura", Date: today.AddDate(0, 0, -70)}},
		)

		Convey("When ranking the reading for men only", func() {
			got := r.Rank(roster, ranking.Request{Role: "Lectura", Date: today, TopN: 4, Gender: model.GenderMale})

			Convey("Then only Beto is returned with score 10", func() {
				So(names(got), ShouldResemble, []string{"Beto"})
				So(got[0].Score, ShouldAlmostEqual, 10.0)
			})
		})

		Convey("When ranking without a gender constraint", func() {
			got := r.Rank(roster, ranking.Request{Role: "Lectura", Date: today, TopN: 4})

			Convey("Then the never-assigned person floats to the top", func() {
				So(names(got), ShouldResemble, []string{"Ana", "Beto"})
			})
		})
	})
}

func TestRank_Filters(t *testing.T) {
	Convey("Given a mixed roster", t, func() {
		noCaps := model.Person{Name: "Fede", Active: true, Gender: model.GenderMale, Eligible: map[string]bool{"Estudiante": false}}
		r, roster, _ := setup([]model.Person{
			student("Ana", model.GenderFemale, true),
			student("Beto", model.GenderMale, false),
			student("Carlos", model.GenderMale, true),
			student("Diana", model.GenderFemale, true),
			noCaps,
		}, nil)
		excluded := dedupe.New(dedupe.WithNames("Carlos"))

		Convey("When ranking with every filter engaged", func() {
			got := r.Rank(roster, ranking.Request{Role: "Discurso", Date: today, Excluded: excluded, Gender: model.GenderFemale})

			Convey("Then no inactive, excluded, mismatched or ineligible person appears", func() {
				So(names(got), ShouldResemble, []string{"Ana", "Diana"})
				for _, c := range got {
					So(c.Person.Active, ShouldBeTrue)
					So(excluded.Contains(c.Person.Name), ShouldBeFalse)
					So(c.Person.Gender, ShouldEqual, model.GenderFemale)
				}
			})
		})

		Convey("When the filters leave nobody", func() {
			got := r.Rank(roster, ranking.Request{Role: "EBC", Date: today})

			Convey("Then the ranking is empty, not an error", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When TopN is smaller than the eligible set", func() {
			got := r.Rank(roster, ranking.Request{Role: "Presidencia", Date: today, TopN: 2})

			Convey("Then the result is capped", func() {
				So(got, ShouldHaveLength, 2)
			})
		})
	})
}

func TestRank_Determinism(t *testing.T) {
	Convey("Given three people with identical scores", t, func() {
		r, roster, _ := setup([]model.Person{
			student("Zoe", model.GenderFemale, true),
			student("Ana", model.GenderFemale, true),
			student("Mia", model.GenderFemale, true),
		}, nil)
		req := ranking.Request{Role: "Presidencia", Date: today, TopN: 3}

		Convey("Then ties keep roster order", func() {
			So(names(r.Rank(roster, req)), ShouldResemble, []string{"Zoe", "Ana", "Mia"})
		})

		Convey("Then ranking twice without an append yields identical output", func() {
			So(r.Rank(roster, req), ShouldResemble, r.Rank(roster, req))
		})
	})

	Convey("Given a ledger append between rankings", t, func() {
		r, roster, l := setup([]model.Person{
			student("Ana", model.GenderFemale, true),
			student("Beto", model.GenderMale, true),
		}, nil)
		req := ranking.Request{Role: "Haga Revisitas", Date: today}
		l.Append("Ana", "Discurso", today.AddDate(0, 0, -7))

		Convey("Then the group-mate's turn pushes Ana down", func() {
			So(names(r.Rank(roster, req)), ShouldResemble, []string{"Beto", "Ana"})
		})
	})
}
