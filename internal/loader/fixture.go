package loader

import (
	"context"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// FixtureSource returns a static set of records useful for local runs and tests.
type FixtureSource struct{}

// NewFixtureSource creates a fixture source.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{}
}

// Load returns a deterministic dataset covering drafted, undrafted and late picks.
func (s *FixtureSource) Load(ctx context.Context) ([]players.Record, Report, error) {
	report := Report{Source: SourceFixture}
	if err := ctx.Err(); err != nil {
		return nil, report, err
	}
	records := FixtureRecords()
	report.Rows = len(records)
	report.Loaded = len(records)
	return records, report, nil
}

// FixtureRecords builds a fresh copy of the fixture dataset.
func FixtureRecords() []players.Record {
	return []players.Record{
		fixture("Tim", "Duncan", "Forward-Center", "Spurs", 19, 10.8, 3.0, 1997, 2016, 1997, 1, 1),
		fixture("Kobe", "Bryant", "Guard", "Lakers", 25.0, 5.2, 4.7, 1996, 2016, 1996, 1, 13),
		fixture("Manu", "Ginobili", "Guard", "Spurs", 13.3, 3.5, 3.8, 2002, 2018, 1999, 2, 57),
		fixture("Nikola", "Jokic", "Center", "Nuggets", 20.9, 10.7, 6.9, 2015, 2024, 2014, 2, 41),
		fixture("Kawhi", "Leonard", "Forward", "Spurs", 19.9, 6.4, 3.0, 2011, 2024, 2011, 1, 15),
		fixture("Giannis", "Antetokounmpo", "Forward", "Bucks", 23.4, 9.8, 4.9, 2013, 2024, 2013, 1, 15),
		fixture("Draymond", "Green", "Forward", "Warriors", 8.7, 7.0, 5.6, 2012, 2024, 2012, 2, 35),
		fixture("Anthony", "Bennett", "Forward", "Cavaliers", 4.4, 3.1, 0.5, 2013, 2017, 2013, 1, 1),
		fixture("Greg", "Oden", "Center", "Trail Blazers", 8.0, 6.2, 0.5, 2008, 2014, 2007, 1, 1),
		fixture("Isaiah", "Thomas", "Guard", "Kings", 17.7, 2.6, 5.0, 2011, 2022, 2011, 2, 60),
		{
			FirstName:    "Ben",
			LastName:     "Wallace",
			Position:     "Center",
			Team:         "Pistons",
			Country:      "USA",
			Height:       "6-9",
			HeightInches: players.Int(81),
			Points:       players.Float(5.7),
			Rebounds:     players.Float(9.6),
			Assists:      players.Float(1.3),
			FromYear:     players.Int(1996),
			ToYear:       players.Int(2012),
			CareerLength: players.Int(16),
		},
		{
			FirstName:    "Udonis",
			LastName:     "Haslem",
			Position:     "Forward",
			Team:         "Heat",
			Country:      "USA",
			Points:       players.Float(7.2),
			Rebounds:     players.Float(6.8),
			Assists:      players.Float(0.8),
			FromYear:     players.Int(2003),
			ToYear:       players.Int(2023),
			CareerLength: players.Int(20),
		},
	}
}

func fixture(first, last, position, team string, pts, reb, ast float64, from, to, draftYear, round, pick int) players.Record {
	return players.Record{
		FirstName:    first,
		LastName:     last,
		Position:     position,
		Team:         team,
		Country:      "USA",
		Points:       players.Float(pts),
		Rebounds:     players.Float(reb),
		Assists:      players.Float(ast),
		FromYear:     players.Int(from),
		ToYear:       players.Int(to),
		CareerLength: players.Int(to - from),
		DraftYear:    players.Int(draftYear),
		DraftRound:   players.Int(round),
		DraftNumber:  players.Int(pick),
	}
}
