package testutil

import (
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

// SampleRecord builds a complete record. A pick of 0 leaves the player undrafted.
func SampleRecord(first, last, position string, points float64, career, round, pick int) players.Record {
	r := players.Record{
		FirstName:    first,
		LastName:     last,
		Position:     position,
		Team:         "Test",
		Points:       players.Float(points),
		Rebounds:     players.Float(0),
		Assists:      players.Float(0),
		CareerLength: players.Int(career),
	}
	if pick > 0 {
		r.DraftNumber = players.Int(pick)
		r.DraftRound = players.Int(round)
		r.DraftYear = players.Int(2000)
	}
	return r
}

// FixtureValued derives the fixture dataset.
func FixtureValued() []players.Valued {
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())
	return vals
}
