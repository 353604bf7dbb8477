package meeting

import (
	"testing"
	"time"

	"github.com/okian/rota/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/unicode/norm"
)

func layout() Layout {
	return Layout{
		TreasuresRows: []int{3, 4},
		ReadingRow:    5,
		MinistryRows:  []int{7, 8, 9},
		LivingRows:    []int{13, 14, 15},
		TopN:          TopN{Chairman: 3, Treasures: 3, Reading: 4, Ministry: 4, Living: 3},
	}
}

func week(cells map[int]string) Week {
	w := Week{Date: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC), Cells: make([]string, 16)}
	for i, c := range cells {
		w.Cells[i] = c
	}
	return w
}

func labels(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestPlan(t *testing.T) {
	Convey("Given the midweek structure", t, func() {
		s := New(layout())

		Convey("When every section has content", func() {
			slots := s.Plan(week(map[int]string{
				3:  "1. El amor de Dios (10 mins.)",
				4:  "2. Busquemos perlas escondidas (10 mins.)",
				5:  "3. Lectura de la Biblia (4 mins.) Isa 1:1-9",
				7:  "4. Empiece conversaciones (3 mins.)",
				8:  "5. Haga revisitas (4 mins.)",
				9:  "6. Discurso (5 mins.)",
				13: "7. Necesidades de la congregación (15 mins.)",
				14: "8. Logros de la organización",
				15: "9. Estudio bíblico de la congregación (30 mins.)",
			}))

			Convey("Then slots come out in meeting order", func() {
				So(labels(slots), ShouldResemble, []string{
					"PRESIDENCIA", "TESOROS", "PERLAS", "LECTURA",
					"SMM1", "SMM2", "SMM3", "NVC1", "NVC2", "EBC",
				})
			})

			Convey("Then roles and filters are inferred from the text", func() {
				So(slots[3].Role, ShouldEqual, RoleReading)
				So(slots[3].Gender, ShouldEqual, model.GenderMale)
				So(slots[3].TopN, ShouldEqual, 4)
				So(slots[4].Role, ShouldEqual, "Empiece conversaciones")
				So(slots[4].AskGender, ShouldBeTrue)
				So(slots[5].Role, ShouldEqual, "Haga Revisitas")
				So(slots[6].Role, ShouldEqual, "Discurso")
				So(slots[6].Gender, ShouldEqual, model.GenderMale)
				So(slots[6].AskGender, ShouldBeFalse)
				So(slots[7].Role, ShouldEqual, RoleNeeds)
				So(slots[8].Role, ShouldEqual, RoleLiving)
				So(slots[9].Role, ShouldEqual, RoleBible)
				So(slots[0].Text, ShouldBeEmpty)
				So(slots[1].Text, ShouldStartWith, "1. El amor")
			})
		})

		Convey("When sections are missing", func() {
			slots := s.Plan(week(map[int]string{
				3:  "Canción 12",
				5:  "Lectura libre",
				8:  "Video: ¿Qué haría usted?",
				15: "Estudio bíblico de la congregación",
			}))

			Convey("Then only the chairman, the ministry row and the study remain", func() {
				So(labels(slots), ShouldResemble, []string{"PRESIDENCIA", "SMM1", "EBC"})
				So(slots[1].Role, ShouldEqual, RoleStudent)
				So(slots[1].AskGender, ShouldBeTrue)
			})
		})

		Convey("When the text uses decomposed accents and upper case", func() {
			slots := s.Plan(week(map[int]string{7: norm.NFD.String("HAGA DISCÍPULOS (5 mins.)")}))

			Convey("Then the keyword still matches", func() {
				So(slots[1].Role, ShouldEqual, "Haga discípulos")
			})
		})

		Convey("When the program has fewer rows than the layout", func() {
			slots := s.Plan(Week{Cells: []string{"", "", ""}})

			Convey("Then only the chairman is planned", func() {
				So(labels(slots), ShouldResemble, []string{"PRESIDENCIA"})
			})
		})
	})
}

func TestLabelsAndMirror(t *testing.T) {
	Convey("Given the midweek structure", t, func() {
		s := New(layout())

		Convey("Then labels without overflow match the output table", func() {
			So(s.Labels(false), ShouldResemble, []string{
				"PRESIDENCIA", "TESOROS", "PERLAS", "LECTURA",
				"SMM1", "SMM2", "SMM3", "NVC1", "NVC2", "EBC",
			})
		})

		Convey("Then overflow labels follow their primary", func() {
			So(s.Labels(true), ShouldResemble, []string{
				"PRESIDENCIA", "TESOROS", "PERLAS", "LECTURA", "LECTURA B",
				"SMM1", "SMM1 B", "SMM2", "SMM2 B", "SMM3", "SMM3 B", "NVC1", "NVC2", "EBC",
			})
		})

		Convey("Then a mirror keeps the text and filters under the variant role", func() {
			primary := Slot{Label: "SMM1", Role: "Discurso", Text: "6. Discurso", Gender: model.GenderMale, TopN: 4, Mirrorable: true}
			m := primary.Mirror("Discurso (Sala B)")
			So(m.Label, ShouldEqual, "SMM1 B")
			So(m.Role, ShouldEqual, "Discurso (Sala B)")
			So(m.Text, ShouldEqual, primary.Text)
			So(m.Gender, ShouldEqual, model.GenderMale)
			So(m.Mirrorable, ShouldBeFalse)
		})
	})
}
