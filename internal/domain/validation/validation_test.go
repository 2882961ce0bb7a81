package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
)

var raceDay = time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	Convey("Given a validator over the default registry", t, func() {
		v := validation.New(registry.New(), nil, nil)

		Convey("When a time-based performance is complete", func() {
			res := v.Validate(model.AthletePerformance{
				AthleteID:       "ath-1",
				Discipline:      model.AlpineGiantSlalom,
				CompetitionID:   "comp-1",
				CompetitionDate: raceDay,
				AthleteTime:     121.4,
				ReferenceTime:   118.9,
				EventLevel:      model.EventLevelA,
			})
			So(res.Valid, ShouldBeTrue)
			So(res.Errors, ShouldBeEmpty)
		})

		Convey("When a ranking-based performance is complete", func() {
			res := v.Validate(model.AthletePerformance{
				AthleteID:       "ath-2",
				Discipline:      model.SnowboardHalfpipe,
				CompetitionID:   "comp-2",
				CompetitionDate: raceDay,
				Rank:            4,
				Tier:            model.Category2,
			})
			So(res.Valid, ShouldBeTrue)
		})

		Convey("When several fields are wrong at once", func() {
			res := v.Validate(model.AthletePerformance{
				Discipline:    "SL",
				CompetitionID: "comp-3",
				AthleteTime:   50,
				ReferenceTime: 52,
				EventLevel:    "Z",
			})

			Convey("Then every problem is reported", func() {
				So(res.Valid, ShouldBeFalse)
				So(res.Errors, ShouldHaveLength, 4)

				var missing *model.MissingFieldError
				So(errors.As(res.Errors[0], &missing), ShouldBeTrue)
				So(missing.Field, ShouldEqual, "athlete_id")
				So(errors.As(res.Errors[1], &missing), ShouldBeTrue)
				So(missing.Field, ShouldEqual, "competition_date")
				So(errors.Is(res.Errors[2], model.ErrInvalidTime), ShouldBeTrue)
				So(errors.Is(res.Errors[3], model.ErrUnknownEventLevel), ShouldBeTrue)
			})
		})

		Convey("When time fields are missing or negative", func() {
			res := v.Validate(model.AthletePerformance{
				AthleteID:       "ath-4",
				Discipline:      model.AlpineDownhill,
				CompetitionID:   "comp-4",
				CompetitionDate: raceDay,
				ReferenceTime:   -3,
			})
			So(res.Errors, ShouldHaveLength, 3)
			So(errors.Is(res.Errors[1], model.ErrInvalidTime), ShouldBeTrue)
			So(errors.Is(res.Errors[2], model.ErrMissingField), ShouldBeTrue)

			Convey("Then a zero time is an invalid time", func() {
				var timeErr *model.InvalidTimeError
				So(errors.As(res.Errors[0], &timeErr), ShouldBeTrue)
				So(timeErr.Field, ShouldEqual, "athlete_time")
				So(timeErr.Value, ShouldEqual, 0)
				So(errors.Is(res.Errors[0], model.ErrMissingField), ShouldBeFalse)
			})
		})

		Convey("When a ranking performance has no rank and a bad tier", func() {
			res := v.Validate(model.AthletePerformance{
				AthleteID:       "ath-5",
				Discipline:      model.FreestyleSlopestyle,
				CompetitionID:   "comp-5",
				CompetitionDate: raceDay,
				Tier:            "CATEGORY_7",
			})
			So(res.Errors, ShouldHaveLength, 2)
			So(errors.Is(res.Errors[0], model.ErrInvalidRank), ShouldBeTrue)
			So(errors.Is(res.Errors[1], model.ErrUnknownTier), ShouldBeTrue)
		})

		Convey("When the discipline is unknown", func() {
			res := v.Validate(model.AthletePerformance{
				AthleteID:       "ath-6",
				Discipline:      "UNKNOWN",
				CompetitionID:   "comp-6",
				CompetitionDate: raceDay,
			})
			So(res.Errors, ShouldHaveLength, 1)
			So(errors.Is(res.Errors[0], model.ErrUnknownDiscipline), ShouldBeTrue)
		})

		Convey("When the record is entirely empty", func() {
			So(func() { v.Validate(model.AthletePerformance{}) }, ShouldNotPanic)
			res := v.Validate(model.AthletePerformance{})
			So(res.Errors, ShouldHaveLength, 4)
		})
	})
}
