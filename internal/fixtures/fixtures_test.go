package fixtures_test

import (
	"testing"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/fixtures"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator_Races(t *testing.T) {
	reg := registry.New()

	Convey("Given two generators with the same seed", t, func() {
		dh, err := reg.Resolve(model.AlpineDownhill)
		So(err, ShouldBeNil)

		a := fixtures.New(fixtures.WithSeed(42), fixtures.WithAthletes(6)).Races(dh, 3)
		b := fixtures.New(fixtures.WithSeed(42), fixtures.WithAthletes(6)).Races(dh, 3)

		Convey("Then they should produce identical races", func() {
			So(a, ShouldResemble, b)
		})

		Convey("Then they should produce the same named athletes", func() {
			ga := fixtures.New(fixtures.WithSeed(42), fixtures.WithAthletes(6)).Athletes()
			gb := fixtures.New(fixtures.WithSeed(42), fixtures.WithAthletes(6)).Athletes()
			So(ga, ShouldResemble, gb)
			So(ga, ShouldHaveLength, 6)
			So(ga[5].ID, ShouldEqual, "athlete-006")
			So(ga[0].Name, ShouldNotBeEmpty)
			So(ga[0].Nation, ShouldNotBeEmpty)
		})

		Convey("Then every race should be a full time-based field", func() {
			So(a, ShouldHaveLength, 3)
			ids := map[string]bool{}
			for _, race := range a {
				ids[race.CompetitionID] = true
				So(race.Discipline, ShouldEqual, model.AlpineDownhill)
				So(race.EventLevel, ShouldBeIn, model.EventLevelA, model.EventLevelB, model.EventLevelC)
				So(race.Entries, ShouldHaveLength, 6)
				for _, e := range race.Entries {
					So(e.Time, ShouldBeGreaterThan, 0)
					So(e.Rank, ShouldEqual, 0)
				}
			}
			So(ids, ShouldHaveLength, 3)
			So(a[1].CompetitionDate.After(a[0].CompetitionDate), ShouldBeTrue)
		})
	})

	Convey("Given a ranking-based discipline", t, func() {
		ba, err := reg.Resolve(model.FreestyleBigAir)
		So(err, ShouldBeNil)

		races := fixtures.New(fixtures.WithSeed(7)).Races(ba, 2)

		Convey("Then entries should carry judged scores and the race a tier", func() {
			for _, race := range races {
				So(race.Tier, ShouldNotBeEmpty)
				for _, e := range race.Entries {
					So(e.Score, ShouldBeBetweenOrEqual, 40, 99)
					So(e.Time, ShouldEqual, 0)
				}
			}
		})
	})
}

func TestPerformances(t *testing.T) {
	Convey("Given a time-based race without a reference time", t, func() {
		race := model.Race{
			CompetitionID: "c1",
			Discipline:    model.AlpineSlalom,
			EventLevel:    model.EventLevelB,
			Entries: []model.RaceEntry{
				{AthleteID: "a", Time: 52.1},
				{AthleteID: "b", Time: 51.4},
			},
		}

		ps := fixtures.Performances(race)

		Convey("Then the fastest time should become the reference", func() {
			So(ps, ShouldHaveLength, 2)
			So(ps[0].ReferenceTime, ShouldEqual, 51.4)
			So(ps[1].ReferenceTime, ShouldEqual, 51.4)
			So(ps[0].EventLevel, ShouldEqual, model.EventLevelB)
			So(ps[0].CompetitionID, ShouldEqual, "c1")
		})
	})

	Convey("Given a judged race with a tie", t, func() {
		race := model.Race{
			Discipline: model.SnowboardHalfpipe,
			Tier:       model.Category2,
			Entries: []model.RaceEntry{
				{AthleteID: "a", Score: 80},
				{AthleteID: "b", Score: 91.5},
				{AthleteID: "c", Score: 91.5},
				{AthleteID: "d", Score: 60},
			},
		}

		ps := fixtures.Performances(race)

		Convey("Then ranks should follow competition ranking", func() {
			So(ps[1].Rank, ShouldEqual, 1)
			So(ps[2].Rank, ShouldEqual, 1)
			So(ps[0].Rank, ShouldEqual, 3)
			So(ps[3].Rank, ShouldEqual, 4)
			So(ps[0].Tier, ShouldEqual, model.Category2)
		})
	})
}

func TestGenerator_Records(t *testing.T) {
	Convey("Given generated giant slalom races", t, func() {
		gs, _ := registry.New().Resolve(model.AlpineGiantSlalom)
		g := fixtures.New(fixtures.WithSeed(3), fixtures.WithAthletes(4), fixtures.WithSeason("2024-2025"))
		races := g.Races(gs, 5)

		recs := g.Records(gs, races)

		Convey("Then each athlete should get one record with every race", func() {
			So(recs, ShouldHaveLength, 4)
			for _, rec := range recs {
				So(rec.Season, ShouldEqual, "2024-2025")
				So(rec.Discipline, ShouldEqual, model.AlpineGiantSlalom)
				So(rec.Performances, ShouldHaveLength, 5)
			}
			So(recs[0].AthleteID, ShouldEqual, "athlete-001")
		})
	})
}
