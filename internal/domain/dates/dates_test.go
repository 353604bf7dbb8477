package dates_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/rota/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given the accepted date encodings", t, func() {
		want := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

		Convey("Then ISO, day-first and timestamp forms all parse to the same day", func() {
			for _, in := range []string{"2025-03-04", "04/03/2025", "4/3/2025", "2025-03-04 00:00:00", " 04/03/2025 "} {
				got, err := dates.Parse(in)
				So(err, ShouldBeNil)
				So(got.Equal(want), ShouldBeTrue)
			}
		})

		Convey("Then month-first is accepted when day-first cannot match", func() {
			got, err := dates.Parse("12/25/2024")
			So(err, ShouldBeNil)
			So(got.Equal(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("Then garbage is rejected with ErrInvalidDate", func() {
			for _, in := range []string{"", "soon", "31/31/2025"} {
				_, err := dates.Parse(in)
				So(errors.Is(err, dates.ErrInvalidDate), ShouldBeTrue)
			}
		})
	})
}

func TestFormatAndDisplay(t *testing.T) {
	Convey("Given a date", t, func() {
		d := time.Date(2025, time.January, 9, 18, 30, 0, 0, time.UTC)

		Convey("Then it is written day/month/year", func() {
			So(dates.Format(d), ShouldEqual, "09/01/2025")
			So(dates.Display(d), ShouldEqual, "09/01/2025")
		})

		Convey("Then the sentinel displays as none", func() {
			So(dates.Display(dates.Sentinel), ShouldEqual, "none")
			So(dates.IsSentinel(dates.Sentinel), ShouldBeTrue)
			So(dates.IsSentinel(d), ShouldBeFalse)
		})
	})
}

func TestWeeksBetween(t *testing.T) {
	Convey("Given two dates ten weeks apart", t, func() {
		from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 70)

		Convey("Then the distance is 10 weeks", func() {
			So(dates.WeeksBetween(from, to), ShouldEqual, 10.0)
		})

		Convey("Then partial weeks are fractional", func() {
			So(dates.WeeksBetween(from, from.AddDate(0, 0, 3)), ShouldAlmostEqual, 3.0/7.0)
		})

		Convey("Then the time of day is ignored", func() {
			So(dates.WeeksBetween(from.Add(23*time.Hour), to), ShouldEqual, 10.0)
		})
	})
}
