// Package handicap converts a player's handicap index into the strokes they receive
// on each hole of a course.
//
// Two steps are involved:
//  1. A tee's band table (or, outside the table, the slope/rating formula) turns the
//     handicap index into a whole-number playing handicap.
//  2. The course layout's stroke indexes spread that playing handicap across the
//     18 holes, hardest hole first.
package handicap

import (
	"errors"
	"fmt"
	"math"
)

// StandardSlope is the slope rating of a course of standard difficulty.
const StandardSlope = 113

// ErrInvalidTee is returned when a tee definition cannot be used for allocation.
var ErrInvalidTee = errors.New("invalid tee definition")

// Band maps an inclusive range of handicap indexes to one course handicap.
type Band struct {
	From           float64 `toml:"from"`
	To             float64 `toml:"to"`
	CourseHandicap int     `toml:"course_handicap"`
}

// Tee is one set of tee boxes: its ratings plus the published handicap table.
// Bands must be ordered by From and must not overlap.
type Tee struct {
	Key          string  `toml:"key"`
	Name         string  `toml:"name"`
	CourseRating float64 `toml:"course_rating"`
	Slope        int     `toml:"slope"`
	Par          int     `toml:"par"`
	Bands        []Band  `toml:"bands"`
}

// PlayingHandicap returns the whole-number allowance for a handicap index on this tee.
// Band bounds are inclusive on both ends. An index outside every band (including one
// falling between two bands) uses the slope/rating formula.
func (t Tee) PlayingHandicap(index float64) int {
	for _, b := range t.Bands {
		if index >= b.From && index <= b.To {
			return b.CourseHandicap
		}
	}
	return t.formulaHandicap(index)
}

// formulaHandicap is round(index * slope/113 + (courseRating - par)), half away from zero.
func (t Tee) formulaHandicap(index float64) int {
	raw := index*float64(t.Slope)/StandardSlope + (t.CourseRating - float64(t.Par))
	return int(math.Round(raw))
}

// Validate checks the ratings and that the bands are ordered, disjoint and
// never step the course handicap down.
func (t Tee) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("%w: missing key", ErrInvalidTee)
	}
	if t.Slope <= 0 {
		return fmt.Errorf("%w: tee %q slope must be positive", ErrInvalidTee, t.Key)
	}
	if t.Par <= 0 {
		return fmt.Errorf("%w: tee %q par must be positive", ErrInvalidTee, t.Key)
	}
	for i, b := range t.Bands {
		if b.From > b.To {
			return fmt.Errorf("%w: tee %q band %d has from %.1f above to %.1f", ErrInvalidTee, t.Key, i, b.From, b.To)
		}
		if i == 0 {
			continue
		}
		prev := t.Bands[i-1]
		if b.From <= prev.To {
			return fmt.Errorf("%w: tee %q band %d overlaps the previous band", ErrInvalidTee, t.Key, i)
		}
		if b.CourseHandicap < prev.CourseHandicap {
			return fmt.Errorf("%w: tee %q band %d decreases the course handicap", ErrInvalidTee, t.Key, i)
		}
	}
	return nil
}

// Yellow is the built-in men's tee: CR 71.4, slope 131, par 72.
func Yellow() Tee {
	return Tee{
		Key:          "yellow",
		Name:         "Yellow",
		CourseRating: 71.4,
		Slope:        131,
		Par:          72,
		Bands: []Band{
			{From: -3.6, To: -3.4, CourseHandicap: -5},
			{From: -3.3, To: -2.6, CourseHandicap: -4},
			{From: -2.5, To: -1.7, CourseHandicap: -3},
			{From: -1.6, To: -0.8, CourseHandicap: -2},
			{From: -0.7, To: 0.0, CourseHandicap: -1},
			{From: 0.1, To: 0.9, CourseHandicap: 0},
			{From: 1.0, To: 1.8, CourseHandicap: 1},
			{From: 1.9, To: 2.6, CourseHandicap: 2},
			{From: 2.7, To: 3.5, CourseHandicap: 3},
			{From: 3.6, To: 4.3, CourseHandicap: 4},
			{From: 4.4, To: 5.2, CourseHandicap: 5},
			{From: 5.3, To: 6.1, CourseHandicap: 6},
			{From: 6.2, To: 6.9, CourseHandicap: 7},
			{From: 7.0, To: 7.8, CourseHandicap: 8},
			{From: 7.9, To: 8.7, CourseHandicap: 9},
			{From: 8.8, To: 9.5, CourseHandicap: 10},
			{From: 9.6, To: 10.4, CourseHandicap: 11},
			{From: 10.5, To: 11.2, CourseHandicap: 12},
			{From: 11.3, To: 12.1, CourseHandicap: 13},
			{From: 12.2, To: 13.0, CourseHandicap: 14},
			{From: 13.1, To: 13.8, CourseHandicap: 15},
			{From: 13.9, To: 14.7, CourseHandicap: 16},
			{From: 14.8, To: 15.6, CourseHandicap: 17},
			{From: 15.7, To: 16.4, CourseHandicap: 18},
			{From: 16.5, To: 17.3, CourseHandicap: 19},
			{From: 17.4, To: 18.2, CourseHandicap: 20},
			{From: 18.3, To: 19.0, CourseHandicap: 21},
			{From: 19.1, To: 19.9, CourseHandicap: 22},
			{From: 20.0, To: 20.7, CourseHandicap: 23},
			{From: 20.8, To: 21.6, CourseHandicap: 24},
			{From: 21.7, To: 22.5, CourseHandicap: 25},
			{From: 22.6, To: 23.3, CourseHandicap: 26},
			{From: 23.4, To: 24.2, CourseHandicap: 27},
			{From: 24.3, To: 25.1, CourseHandicap: 28},
			{From: 25.2, To: 25.9, CourseHandicap: 29},
			{From: 26.0, To: 26.8, CourseHandicap: 30},
			{From: 26.9, To: 27.6, CourseHandicap: 31},
			{From: 27.7, To: 28.5, CourseHandicap: 32},
			{From: 28.6, To: 29.4, CourseHandicap: 33},
			{From: 29.5, To: 30.2, CourseHandicap: 34},
			{From: 30.3, To: 31.1, CourseHandicap: 35},
			{From: 31.2, To: 32.0, CourseHandicap: 36},
			{From: 32.1, To: 32.8, CourseHandicap: 37},
			{From: 32.9, To: 33.7, CourseHandicap: 38},
			{From: 33.8, To: 34.5, CourseHandicap: 39},
			{From: 34.6, To: 35.4, CourseHandicap: 40},
			{From: 35.5, To: 36.3, CourseHandicap: 41},
			{From: 36.4, To: 37.1, CourseHandicap: 42},
			{From: 37.2, To: 38.0, CourseHandicap: 43},
			{From: 38.1, To: 38.9, CourseHandicap: 44},
			{From: 39.0, To: 39.7, CourseHandicap: 45},
			{From: 39.8, To: 40.6, CourseHandicap: 46},
			{From: 40.7, To: 41.4, CourseHandicap: 47},
			{From: 41.5, To: 42.3, CourseHandicap: 48},
			{From: 42.4, To: 43.2, CourseHandicap: 49},
			{From: 43.3, To: 44.0, CourseHandicap: 50},
			{From: 44.1, To: 44.9, CourseHandicap: 51},
			{From: 45.0, To: 45.8, CourseHandicap: 52},
			{From: 45.9, To: 46.6, CourseHandicap: 53},
			{From: 46.7, To: 47.5, CourseHandicap: 54},
			{From: 47.6, To: 48.3, CourseHandicap: 55},
			{From: 48.4, To: 49.2, CourseHandicap: 56},
			{From: 49.3, To: 50.1, CourseHandicap: 57},
			{From: 50.2, To: 50.9, CourseHandicap: 58},
			{From: 51.0, To: 51.8, CourseHandicap: 59},
			{From: 51.9, To: 52.7, CourseHandicap: 60},
			{From: 52.8, To: 53.5, CourseHandicap: 61},
			{From: 53.6, To: 54.0, CourseHandicap: 62},
		},
	}
}

// Red is the built-in forward tee: CR 73.1, slope 125, par 72.
func Red() Tee {
	return Tee{
		Key:          "red",
		Name:         "Red",
		CourseRating: 73.1,
		Slope:        125,
		Par:          72,
		Bands: []Band{
			{From: -3.6, To: -3.3, CourseHandicap: -3},
			{From: -3.2, To: -2.4, CourseHandicap: -2},
			{From: -2.3, To: -1.5, CourseHandicap: -1},
			{From: -1.4, To: -0.6, CourseHandicap: 0},
			{From: -0.5, To: 0.3, CourseHandicap: 1},
			{From: 0.4, To: 1.2, CourseHandicap: 2},
			{From: 1.3, To: 2.1, CourseHandicap: 3},
			{From: 2.2, To: 3.0, CourseHandicap: 4},
			{From: 3.1, To: 3.9, CourseHandicap: 5},
			{From: 4.0, To: 4.8, CourseHandicap: 6},
			{From: 4.9, To: 5.7, CourseHandicap: 7},
			{From: 5.8, To: 6.6, CourseHandicap: 8},
			{From: 6.7, To: 7.5, CourseHandicap: 9},
			{From: 7.6, To: 8.4, CourseHandicap: 10},
			{From: 8.5, To: 9.4, CourseHandicap: 11},
			{From: 9.5, To: 10.3, CourseHandicap: 12},
			{From: 10.4, To: 11.2, CourseHandicap: 13},
			{From: 11.3, To: 12.1, CourseHandicap: 14},
			{From: 12.2, To: 13.0, CourseHandicap: 15},
			{From: 13.1, To: 13.9, CourseHandicap: 16},
			{From: 14.0, To: 14.8, CourseHandicap: 17},
			{From: 14.9, To: 15.7, CourseHandicap: 18},
			{From: 15.8, To: 16.6, CourseHandicap: 19},
			{From: 16.7, To: 17.5, CourseHandicap: 20},
			{From: 17.6, To: 18.4, CourseHandicap: 21},
			{From: 18.5, To: 19.3, CourseHandicap: 22},
			{From: 19.4, To: 20.2, CourseHandicap: 23},
			{From: 20.3, To: 21.1, CourseHandicap: 24},
			{From: 21.2, To: 22.0, CourseHandicap: 25},
			{From: 22.1, To: 22.9, CourseHandicap: 26},
			{From: 23.0, To: 23.8, CourseHandicap: 27},
			{From: 23.9, To: 24.7, CourseHandicap: 28},
			{From: 24.8, To: 25.6, CourseHandicap: 29},
			{From: 25.7, To: 26.5, CourseHandicap: 30},
			{From: 26.6, To: 27.4, CourseHandicap: 31},
			{From: 27.5, To: 28.3, CourseHandicap: 32},
			{From: 28.4, To: 29.2, CourseHandicap: 33},
			{From: 29.3, To: 30.1, CourseHandicap: 34},
			{From: 30.2, To: 31.0, CourseHandicap: 35},
			{From: 31.1, To: 32.0, CourseHandicap: 36},
			{From: 32.1, To: 32.9, CourseHandicap: 37},
			{From: 33.0, To: 33.8, CourseHandicap: 38},
			{From: 33.9, To: 34.7, CourseHandicap: 39},
			{From: 34.8, To: 35.6, CourseHandicap: 40},
			{From: 35.7, To: 36.5, CourseHandicap: 41},
			{From: 36.6, To: 37.4, CourseHandicap: 42},
			{From: 37.5, To: 38.3, CourseHandicap: 43},
			{From: 38.4, To: 39.2, CourseHandicap: 44},
			{From: 39.3, To: 40.1, CourseHandicap: 45},
			{From: 40.2, To: 41.0, CourseHandicap: 46},
			{From: 41.1, To: 41.9, CourseHandicap: 47},
			{From: 42.0, To: 42.8, CourseHandicap: 48},
			{From: 42.9, To: 43.7, CourseHandicap: 49},
			{From: 43.8, To: 44.6, CourseHandicap: 50},
			{From: 44.7, To: 45.5, CourseHandicap: 51},
			{From: 45.6, To: 46.4, CourseHandicap: 52},
			{From: 46.5, To: 47.3, CourseHandicap: 53},
			{From: 47.4, To: 48.2, CourseHandicap: 54},
			{From: 48.3, To: 49.1, CourseHandicap: 55},
			{From: 49.2, To: 50.0, CourseHandicap: 56},
			{From: 50.1, To: 50.9, CourseHandicap: 57},
			{From: 51.0, To: 51.8, CourseHandicap: 58},
			{From: 51.9, To: 52.7, CourseHandicap: 59},
			{From: 52.8, To: 53.6, CourseHandicap: 60},
			{From: 53.7, To: 54.0, CourseHandicap: 61},
		},
	}
}
