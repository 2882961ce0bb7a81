package timepoints_test

import (
	"errors"
	"testing"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/timepoints"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func fullField() *model.FieldStrength {
	return &model.FieldStrength{
		Top10Best5Points:   []float64{10, 12, 14, 16, 18},
		AllBest5Points:     []float64{5, 8, 10, 12, 14},
		AllBest5RacePoints: []float64{0, 5, 10, 15, 20},
	}
}

func TestBase(t *testing.T) {
	Convey("Given a time-based engine", t, func() {
		e := timepoints.New()

		Convey("When the athlete matches the reference time", func() {
			base, err := e.Base(100, 100, 1250)
			So(err, ShouldBeNil)
			So(base, ShouldEqual, 0)
		})

		Convey("When the athlete is two percent slower in downhill", func() {
			base, err := e.Base(102, 100, 1250)
			So(err, ShouldBeNil)
			So(base, ShouldEqual, 25)
		})

		Convey("When times grow the base never decreases", func() {
			prev := -1.0
			for tm := 100.0; tm < 130; tm += 0.37 {
				base, err := e.Base(tm, 100, 730)
				So(err, ShouldBeNil)
				So(base, ShouldBeGreaterThanOrEqualTo, prev)
				prev = base
			}
		})

		Convey("When a time is not positive", func() {
			_, err := e.Base(0, 100, 1250)
			So(errors.Is(err, model.ErrInvalidTime), ShouldBeTrue)

			_, err = e.Base(100, -1, 1250)
			var timeErr *model.InvalidTimeError
			So(errors.As(err, &timeErr), ShouldBeTrue)
			So(timeErr.Field, ShouldEqual, "reference_time")
		})

		Convey("When the athlete beats the reference time", func() {
			_, err := e.Base(99, 100, 1250)
			var timeErr *model.InvalidTimeError
			So(errors.As(err, &timeErr), ShouldBeTrue)
			So(timeErr.Field, ShouldEqual, "athlete_time")
			So(timeErr.Value, ShouldEqual, 99)
		})
	})
}

func TestPenalty(t *testing.T) {
	Convey("Given a time-based engine", t, func() {
		e := timepoints.New()

		Convey("When the field is complete", func() {
			So(e.Penalty(fullField()), ShouldEqual, 6.9)
		})

		Convey("When no field is supplied", func() {
			So(e.Penalty(nil), ShouldEqual, 0)
		})

		Convey("When a list is short of five values", func() {
			fs := fullField()
			fs.AllBest5Points = fs.AllBest5Points[:4]
			So(e.Penalty(fs), ShouldEqual, 0)
		})

		Convey("When the race points outweigh the field", func() {
			fs := &model.FieldStrength{
				Top10Best5Points:   []float64{0, 0, 0, 0, 0},
				AllBest5Points:     []float64{0, 0, 0, 0, 0},
				AllBest5RacePoints: []float64{0, 5, 10, 15, 20},
			}
			So(e.Penalty(fs), ShouldEqual, 0)
		})

		Convey("When the divisor is configured", func() {
			e12 := timepoints.New(timepoints.WithPenaltyDivisor(12))
			So(e12.PenaltyDivisor(), ShouldEqual, 12)
			So(e12.Penalty(fullField()), ShouldEqual, 5.75)
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given a time-based engine", t, func() {
		e := timepoints.New()

		Convey("When a B-level downhill race has a full field", func() {
			out, err := e.Compute(timepoints.Input{
				Factor:        1250,
				MaxPoints:     330,
				AthleteTime:   102,
				ReferenceTime: 100,
				EventLevel:    model.EventLevelB,
				Field:         fullField(),
			})
			So(err, ShouldBeNil)
			So(out.Base, ShouldEqual, 25)
			So(out.Penalty, ShouldEqual, 6.9)
			So(out.Coefficient, ShouldEqual, 0.6)
			So(out.Points, ShouldEqual, 19.14)
			So(out.Capped, ShouldBeFalse)
		})

		Convey("When the raw value exceeds the discipline ceiling", func() {
			out, err := e.Compute(timepoints.Input{
				Factor:        730,
				MaxPoints:     165,
				AthleteTime:   150,
				ReferenceTime: 100,
				EventLevel:    model.EventLevelA,
			})
			So(err, ShouldBeNil)
			So(out.Raw, ShouldEqual, 365)
			So(out.Points, ShouldEqual, 165)
			So(out.Capped, ShouldBeTrue)
		})

		Convey("When the scaled value lands on a half cent", func() {
			out, err := e.Compute(timepoints.Input{
				Factor:        730,
				AthleteTime:   100.10274,
				ReferenceTime: 100,
				EventLevel:    model.EventLevelC,
			})
			So(err, ShouldBeNil)
			So(out.Base, ShouldEqual, 0.75)
			So(out.Raw, ShouldEqual, 0.23)
			So(out.Points, ShouldEqual, 0.23)
		})

		Convey("When times grow the points never decrease", func() {
			for _, level := range []model.EventLevel{model.EventLevelB, model.EventLevelC} {
				prev := -1.0
				for tm := 100.0; tm < 140; tm += 0.013 {
					out, err := e.Compute(timepoints.Input{
						Factor:        730,
						AthleteTime:   tm,
						ReferenceTime: 100,
						EventLevel:    level,
						Field:         fullField(),
					})
					So(err, ShouldBeNil)
					So(out.Points, ShouldBeGreaterThanOrEqualTo, prev)
					prev = out.Points
				}
			}
		})

		Convey("When the event level is unknown", func() {
			_, err := e.Compute(timepoints.Input{
				Factor: 1250, AthleteTime: 101, ReferenceTime: 100, EventLevel: "Z",
			})
			So(errors.Is(err, model.ErrUnknownEventLevel), ShouldBeTrue)
		})

		Convey("When coefficients are overridden", func() {
			custom := timepoints.New(timepoints.WithEventCoefficients(map[model.EventLevel]float64{
				model.EventLevelA: 1.0,
			}))
			_, err := custom.Coefficient(model.EventLevelB)
			So(errors.Is(err, model.ErrUnknownEventLevel), ShouldBeTrue)
		})
	})
}

func TestFieldPenalty(t *testing.T) {
	Convey("Given a twelve-athlete race snapshot", t, func() {
		e := timepoints.New()
		pre := []*float64{ptr(10), ptr(12), nil, ptr(14), ptr(16), ptr(18), ptr(20), ptr(22), ptr(24), ptr(26), ptr(1), ptr(2)}
		entries := make([]timepoints.FieldEntry, 0, len(pre))
		for i := len(pre) - 1; i >= 0; i-- {
			entries = append(entries, timepoints.FieldEntry{BasePoints: float64(i * 5), PrePoints: pre[i]})
		}

		Convey("When the field strength is derived", func() {
			fs := e.FieldPenalty(entries)

			Convey("Then sum A only considers the top ten finishers", func() {
				So(fs.Top10Best5Points, ShouldResemble, []float64{10, 12, 14, 16, 18})
			})

			Convey("Then sum B considers every entrant", func() {
				So(fs.AllBest5Points, ShouldResemble, []float64{1, 2, 10, 12, 14})
			})

			Convey("Then sum C takes the five best race points", func() {
				So(fs.AllBest5RacePoints, ShouldResemble, []float64{0, 5, 10, 15, 20})
			})

			Convey("Then the penalty follows", func() {
				// (70 + 39 - 50) / 10
				So(e.Penalty(&fs), ShouldEqual, 5.9)
			})
		})

		Convey("When fewer than five entrants hold points", func() {
			fs := e.FieldPenalty(entries[:3])
			So(e.Penalty(&fs), ShouldEqual, 0)
		})
	})
}

func TestReverseCalculation(t *testing.T) {
	Convey("Given a time-based engine", t, func() {
		e := timepoints.New()

		Convey("When asking for the time worth 25 downhill points", func() {
			So(e.TimeForPoints(100, 25, 1250, 1.0), ShouldEqual, 102)
		})

		Convey("When the athlete is slower than required", func() {
			So(e.ImprovementNeeded(105, 100, 25, 1250, 1.0), ShouldEqual, 3)
		})

		Convey("When the athlete is already fast enough", func() {
			So(e.ImprovementNeeded(101, 100, 25, 1250, 1.0), ShouldEqual, 0)
		})

		Convey("When checking the points range", func() {
			So(timepoints.IsValidPoints(0, 330), ShouldBeTrue)
			So(timepoints.IsValidPoints(330, 330), ShouldBeTrue)
			So(timepoints.IsValidPoints(-0.01, 330), ShouldBeFalse)
			So(timepoints.IsValidPoints(330.01, 330), ShouldBeFalse)
		})
	})
}
