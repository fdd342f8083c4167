package valuation

import (
	"math"
	"reflect"
	"slices"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

func genRecord() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.Float64Range(0, 40),
		gen.Float64Range(0, 20),
		gen.Float64Range(0, 15),
		gen.IntRange(0, 22),
		gen.PtrOf(gen.IntRange(1, 60)),
		gen.PtrOf(gen.IntRange(1, 2)),
		gen.OneConstOf("Guard", "Forward", "Center", ""),
	).Map(func(vals []interface{}) players.Record {
		draftNumber, _ := vals[5].(*int)
		draftRound, _ := vals[6].(*int)
		return players.Record{
			FirstName:    vals[0].(string),
			Points:       players.Float(vals[1].(float64)),
			Rebounds:     players.Float(vals[2].(float64)),
			Assists:      players.Float(vals[3].(float64)),
			CareerLength: players.Int(vals[4].(int)),
			DraftNumber:  draftNumber,
			DraftRound:   draftRound,
			Position:     vals[7].(string),
		}
	})
}

func countEligible(records []players.Record) int {
	n := 0
	for _, r := range records {
		if _, ok, err := ROI(r); ok && err == nil {
			n++
		}
	}
	return n
}

func TestDerivedMetricProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("value score and roi are non-negative and finite", prop.ForAll(
		func(r players.Record) bool {
			value, err := ValueScore(r)
			if err != nil || value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
				return false
			}
			roi, ok, err := ROI(r)
			if err != nil {
				return false
			}
			return !ok || (roi >= 0 && !math.IsInf(roi, 0) && !math.IsNaN(roi))
		},
		genRecord(),
	))

	properties.Property("top roi length is min(n, eligible) and sorted", prop.ForAll(
		func(records []players.Record, n int) bool {
			got := TopROI(records, n, "")
			want := countEligible(records)
			if n < want {
				want = n
			}
			if len(got) != want {
				return false
			}
			return sort.SliceIsSorted(got, func(i, j int) bool { return *got[i].ROI > *got[j].ROI })
		},
		gen.SliceOf(genRecord()),
		gen.IntRange(0, 30),
	))

	properties.Property("undrafted records never appear in roi views", prop.ForAll(
		func(records []players.Record) bool {
			for _, ranked := range TopROI(records, len(records), "") {
				if ranked.Record.DraftNumber == nil {
					return false
				}
			}
			sums := map[int]int{}
			for _, r := range records {
				if r.DraftNumber != nil && r.DraftRound != nil {
					sums[*r.DraftRound]++
				}
			}
			for round := range AverageROIByDraftRound(records) {
				if sums[round] == 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genRecord()),
	))

	properties.Property("queries are idempotent and do not mutate input", prop.ForAll(
		func(records []players.Record) bool {
			before := slices.Clone(records)
			first := TopROI(records, 10, "Guard")
			second := TopROI(records, 10, "Guard")
			avgFirst := AverageROIByDraftRound(records)
			avgSecond := AverageROIByDraftRound(records)
			return reflect.DeepEqual(first, second) &&
				reflect.DeepEqual(avgFirst, avgSecond) &&
				reflect.DeepEqual(before, records)
		},
		gen.SliceOf(genRecord()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestWorkedExamples(t *testing.T) {
	a := record("A", 10, 5, 5, 2, players.Int(1))
	b := record("B", 20, 10, 10, 1, nil)

	value, err := ValueScore(b)
	require.NoError(t, err)
	assert.Equal(t, 40.0, value)

	_, ok, err := ROI(b)
	require.NoError(t, err)
	assert.False(t, ok)

	top := TopROI([]players.Record{a, b}, 5, "")
	require.Len(t, top, 1)
	assert.Equal(t, "A", top[0].Name)
	require.NotNil(t, top[0].ROI)
	assert.Equal(t, 40.0, *top[0].ROI)

	r1 := record("R1", 10, 0, 0, 1, players.Int(1))
	r1.DraftRound = players.Int(1)
	r2 := record("R2", 20, 0, 0, 1, players.Int(1))
	r2.DraftRound = players.Int(1)
	r3 := record("R3", 5, 0, 0, 1, players.Int(1))
	r3.DraftRound = players.Int(2)
	assert.Equal(t, map[int]float64{1: 15, 2: 5}, AverageROIByDraftRound([]players.Record{r1, r2, r3}))

	filtered, err := FilterBy([]players.Record{a, b}, Filter{Position: "Center"})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
