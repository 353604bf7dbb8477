package roles_test

import (
	"testing"

	"github.com/okian/rota/internal/domain/roles"
	. "github.com/smartystreets/goconvey/convey"
)

var smm = []string{"Discurso", "Haga Revisitas", "Empiece conversaciones", "Haga discípulos", "Explique sus creencias"}

func newNormalizer(opts ...roles.Option) *roles.Normalizer {
	base := []roles.Option{
		roles.WithFairnessGroups(map[string][]string{"SMM": smm}),
		roles.WithEligibilityGroups(map[string][]string{"Estudiante": append([]string{"Lectura"}, smm...)}),
		roles.WithGroupedDisplay("SMM"),
		roles.WithVariantToken("(Sala B)"),
	}
	return roles.New(append(base, opts...)...)
}

func TestResolve(t *testing.T) {
	Convey("Given the default meeting groups", t, func() {
		n := newNormalizer()

		Convey("When resolving an SMM sub-part", func() {
			k := n.Resolve("Haga Revisitas")

			Convey("Then it uses the student column and the SMM clock", func() {
				So(k.Eligibility, ShouldEqual, "Estudiante")
				So(k.Fairness, ShouldEqual, "SMM")
				So(k.Variant, ShouldBeFalse)
			})
		})

		Convey("When resolving the reading", func() {
			k := n.Resolve("Lectura")

			Convey("Then eligibility and fairness groups differ", func() {
				So(k.Eligibility, ShouldEqual, "Estudiante")
				So(k.Fairness, ShouldEqual, "Lectura")
			})
		})

		Convey("When resolving an unknown key", func() {
			k := n.Resolve("Presidencia")

			Convey("Then it maps to itself in both outputs", func() {
				So(k.Eligibility, ShouldEqual, "Presidencia")
				So(k.Fairness, ShouldEqual, "Presidencia")
			})
		})

		Convey("When resolving an auxiliary room variant", func() {
			k := n.Resolve("Discurso (Sala B)")

			Convey("Then the token is stripped before lookup but kept as raw", func() {
				So(k.Raw, ShouldEqual, "Discurso (Sala B)")
				So(k.Variant, ShouldBeTrue)
				So(k.Eligibility, ShouldEqual, "Estudiante")
				So(k.Fairness, ShouldEqual, "SMM")
			})
		})

		Convey("Then grouped display follows the fairness group", func() {
			So(n.Grouped("Explique sus creencias"), ShouldBeTrue)
			So(n.Grouped("Haga discípulos (Sala B)"), ShouldBeTrue)
			So(n.Grouped("Lectura"), ShouldBeFalse)
			So(n.Grouped("Estudiante"), ShouldBeFalse)
		})

		Convey("Then variants are built from the token", func() {
			So(n.Variant("Lectura"), ShouldEqual, "Lectura (Sala B)")
		})
	})

	Convey("Given separate variant fairness", t, func() {
		n := newNormalizer(roles.WithSeparateVariantFairness(true))

		Convey("Then the auxiliary room keeps its own clock", func() {
			So(n.FairnessGroup("Lectura (Sala B)"), ShouldEqual, "Lectura (Sala B)")
			So(n.FairnessGroup("Discurso (Sala B)"), ShouldEqual, "SMM (Sala B)")
			So(n.EligibilityColumn("Discurso (Sala B)"), ShouldEqual, "Estudiante")
		})

		Convey("Then grouped display still applies to variants", func() {
			So(n.Grouped("Discurso (Sala B)"), ShouldBeTrue)
		})
	})

	Convey("Given an explicit mapping for a variant key", t, func() {
		n := newNormalizer(
			roles.WithSeparateVariantFairness(true),
			roles.WithFairnessGroups(map[string][]string{"Lectores": {"Lectura", "Lectura (Sala B)"}}),
		)

		Convey("Then the explicit mapping wins", func() {
			So(n.FairnessGroup("Lectura (Sala B)"), ShouldEqual, "Lectores")
			So(n.FairnessGroup("Lectura"), ShouldEqual, "Lectores")
		})
	})

	Convey("Given no options", t, func() {
		n := roles.New()

		Convey("Then every key is its own group and no variant exists", func() {
			k := n.Resolve("  Lectura (Sala B) ")
			So(k.Raw, ShouldEqual, "Lectura (Sala B)")
			So(k.Fairness, ShouldEqual, "Lectura (Sala B)")
			So(k.Variant, ShouldBeFalse)
			So(n.Variant("Lectura"), ShouldEqual, "Lectura")
		})
	})
}
