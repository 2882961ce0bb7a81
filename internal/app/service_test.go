package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/skipoints/internal/app"
	"github.com/okian/skipoints/internal/config"
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/season"
	"github.com/okian/skipoints/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var raceDay = time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

func downhill(athlete, competition string, athleteTime float64) model.AthletePerformance {
	return model.AthletePerformance{
		AthleteID:       athlete,
		Discipline:      model.AlpineDownhill,
		CompetitionID:   competition,
		CompetitionDate: raceDay,
		AthleteTime:     athleteTime,
		ReferenceTime:   100,
		EventLevel:      model.EventLevelA,
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["queueSize"], ShouldEqual, 1024)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(3),
			service.WithQueueSize(16),
		)

		Convey("Then the options should be reflected in the stats", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 3)
			So(stats["queueSize"], ShouldEqual, 16)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should be marked as started", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.GetStats()["queueLength"], ShouldEqual, 0)
			})

			Convey("And starting twice should be harmless", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
				svc.Stop()
			})
		})
	})
}

func TestService_ComputePoints(t *testing.T) {
	Convey("Given a service built from a config with a custom divisor", t, func() {
		cfg := config.New()
		cfg.PenaltyDivisor = 12
		svc := service.New(service.WithConfig(cfg))
		ctx := context.Background()

		Convey("When a downhill performance is scored", func() {
			r, err := svc.ComputePoints(ctx, downhill("a1", "c1", 102))

			Convey("Then base points should follow the discipline factor", func() {
				So(err, ShouldBeNil)
				So(r.Points, ShouldEqual, 25)
				So(r.System, ShouldEqual, model.AlpinePoints)
				So(r.Direction, ShouldEqual, model.LowerIsBetter)
			})
		})

		Convey("When the discipline is unknown", func() {
			p := downhill("a1", "c1", 102)
			p.Discipline = "CURLING"
			_, err := svc.ComputePoints(ctx, p)

			Convey("Then the unknown discipline error should surface", func() {
				So(errors.Is(err, model.ErrUnknownDiscipline), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.ComputePoints(cctx, downhill("a1", "c1", 102))

			Convey("Then the cancellation should be returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a config overriding the downhill factor by alias", t, func() {
		cfg := config.New()
		cfg.TimeFactors = map[string]float64{"DH": 1500}
		svc := service.New(service.WithConfig(cfg))

		Convey("Then the registry should carry the override", func() {
			sys, err := svc.ResolveSystem("ALPINE_DH")
			So(err, ShouldBeNil)
			So(sys.(registry.TimeBased).Factor, ShouldEqual, 1500)
		})
	})
}

func TestService_ComputeBatch(t *testing.T) {
	Convey("Given a started service with a tiny queue", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(2))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		ps := make([]model.AthletePerformance, 40)
		for i := range ps {
			ps[i] = downhill("a1", "c1", 100+float64(i)/10)
		}

		Convey("When a batch larger than the queue is computed", func() {
			results, err := svc.ComputeBatch(ctx, ps)

			Convey("Then every result should be in input order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 40)
				for i := 1; i < len(results); i++ {
					So(results[i].Points, ShouldBeGreaterThanOrEqualTo, results[i-1].Points)
				}
				So(results[0].Points, ShouldEqual, 0)
				So(results[8].Points, ShouldEqual, 10)
			})
		})

		Convey("When some items are invalid", func() {
			ps[3].AthleteTime = -1
			ps[7].Discipline = "POLO"

			results, err := svc.ComputeBatch(ctx, ps)

			Convey("Then a batch error should name the failed indices", func() {
				var be *model.BatchError
				So(errors.As(err, &be), ShouldBeTrue)
				So(be.Items, ShouldHaveLength, 2)
				So(be.Items[0].Index, ShouldEqual, 3)
				So(be.Items[1].Index, ShouldEqual, 7)
				So(errors.Is(err, model.ErrUnknownDiscipline), ShouldBeTrue)
				So(results, ShouldHaveLength, 40)
				So(results[4].Points, ShouldEqual, 5)
			})
		})

		Convey("When the batch is empty", func() {
			results, err := svc.ComputeBatch(ctx, nil)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then batches should be computed inline", func() {
			results, err := svc.ComputeBatch(context.Background(), []model.AthletePerformance{downhill("a", "c", 104)})
			So(err, ShouldBeNil)
			So(results[0].Points, ShouldEqual, 50)
		})
	})
}

func TestService_SummarizeSeason(t *testing.T) {
	Convey("Given a downhill season with a repeated competition", t, func() {
		svc := service.New()
		rec := model.SeasonRecord{
			Season:     "2025-2026",
			AthleteID:  "a1",
			Discipline: "DH",
			Performances: []model.AthletePerformance{
				downhill("a1", "c1", 104),
				downhill("a1", "c2", 102),
				downhill("a1", "c2", 102),
				downhill("a1", "c3", 108),
			},
		}

		sum, err := svc.SummarizeSeason(context.Background(), rec)

		Convey("Then the duplicate should be skipped and the best two averaged", func() {
			So(err, ShouldBeNil)
			So(sum.DuplicatesSkipped, ShouldEqual, 1)
			So(sum.Entries, ShouldEqual, 3)
			So(sum.FinalPoints, ShouldEqual, 37.5)
			So(*sum.NextBaseline, ShouldEqual, 18.75)
		})
	})

	Convey("Given several seasons", t, func() {
		svc := service.New()
		recs := []model.SeasonRecord{
			{AthleteID: "a1", Discipline: model.AlpineDownhill, Performances: []model.AthletePerformance{
				downhill("a1", "c1", 102), downhill("a1", "c2", 104),
			}},
			{AthleteID: "a2", Discipline: model.AlpineDownhill, Performances: []model.AthletePerformance{
				downhill("a2", "c1", 101), downhill("a2", "c2", 103),
			}},
			{AthleteID: "a3", Discipline: "NOPE"},
		}

		sums, err := svc.SummarizeSeasons(context.Background(), recs)

		Convey("Then failures should be reported by index and the rest ranked", func() {
			var be *model.BatchError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.Items, ShouldHaveLength, 1)
			So(be.Items[0].Index, ShouldEqual, 2)

			entries, err := svc.Standings(context.Background(), sums[:2])
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].AthleteID, ShouldEqual, "a2")
			So(entries[0].Points, ShouldEqual, 25)
			So(entries[1].Rank, ShouldEqual, 2)
		})
	})
}

func TestService_SummarizeSeasonsOnPool(t *testing.T) {
	Convey("Given a started service and two season records", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		recs := []model.SeasonRecord{
			{AthleteID: "a1", Discipline: model.AlpineDownhill, Performances: []model.AthletePerformance{
				downhill("a1", "c1", 102), downhill("a1", "c1", 102), downhill("a1", "c2", 104),
			}},
			{AthleteID: "a2", Discipline: model.AlpineDownhill, Performances: []model.AthletePerformance{
				downhill("a2", "c1", 101), downhill("a2", "c2", 0),
			}},
		}

		sums, err := svc.SummarizeSeasons(context.Background(), recs)

		Convey("Then every distinct performance is scored by the workers", func() {
			So(svc.GetStats()["processed"], ShouldEqual, int64(4))
			So(sums[0].DuplicatesSkipped, ShouldEqual, 1)
			So(sums[0].FinalPoints, ShouldEqual, 37.5)
		})

		Convey("Then a failed performance is reported under its record", func() {
			var be *model.BatchError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.Items, ShouldHaveLength, 1)
			So(be.Items[0].Index, ShouldEqual, 1)

			var inner *model.BatchError
			So(errors.As(be.Items[0].Err, &inner), ShouldBeTrue)
			So(inner.Items[0].Index, ShouldEqual, 1)
			So(errors.Is(inner.Items[0].Err, model.ErrInvalidTime), ShouldBeTrue)
		})
	})
}

func TestService_ComputeRace(t *testing.T) {
	Convey("Given a judged race", t, func() {
		svc := service.New()
		race := model.Race{
			CompetitionID: "ba-1",
			Discipline:    model.FreestyleBigAir,
			Tier:          model.Category3,
			Entries: []model.RaceEntry{
				{AthleteID: "x", Score: 70},
				{AthleteID: "y", Score: 88},
			},
		}

		results, err := svc.ComputeRace(context.Background(), race)

		Convey("Then the winner should get the tier ceiling", func() {
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].AthleteID, ShouldEqual, "y")
			So(results[0].Points, ShouldEqual, 120)
			So(results[1].Points, ShouldEqual, 96)
		})
	})
}

func TestService_Trend(t *testing.T) {
	Convey("Given downhill results getting better over time", t, func() {
		svc := service.New()
		results := []model.PointsResult{
			{CompetitionDate: raceDay, Points: 60},
			{CompetitionDate: raceDay.AddDate(0, 0, 7), Points: 50},
			{CompetitionDate: raceDay.AddDate(0, 0, 14), Points: 40},
		}

		trend, err := svc.Trend("DH", results)

		Convey("Then the trend should be improving", func() {
			So(err, ShouldBeNil)
			So(trend.Trend, ShouldEqual, season.TrendImproving)
		})
	})
}

func TestService_Targets(t *testing.T) {
	Convey("Given a service with rulebook defaults", t, func() {
		svc := service.New()

		Convey("When asking for the downhill time worth 25 points", func() {
			target, err := svc.TimeTarget("DH", 100, 25, model.EventLevelA, 104)

			Convey("Then the time and the needed improvement should follow the factor", func() {
				So(err, ShouldBeNil)
				So(target.Discipline, ShouldEqual, model.AlpineDownhill)
				So(target.Time, ShouldEqual, 102)
				So(target.Improvement, ShouldEqual, 2)
			})
		})

		Convey("When the discipline is judged", func() {
			_, err := svc.TimeTarget(model.SnowboardBigAir, 100, 25, model.EventLevelA, 0)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("When the reference time is missing", func() {
			_, err := svc.TimeTarget("SL", 0, 25, model.EventLevelA, 0)
			So(errors.Is(err, model.ErrInvalidTime), ShouldBeTrue)
		})

		Convey("When listing the top tier scale", func() {
			rows, err := svc.RankTable(3, model.Category1)

			Convey("Then the points should follow the percentages", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Points, ShouldEqual, 360)
				So(rows[1].Points, ShouldEqual, 288)
				So(rows[2].Points, ShouldEqual, 216)
				So(svc.RankCutoff(), ShouldEqual, 30)
			})
		})

		Convey("When moving from third to first", func() {
			gain, err := svc.RankImprovement(3, 1, model.Category1)
			So(err, ShouldBeNil)
			So(gain, ShouldEqual, 144)
		})
	})
}
