package handicap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTee_PlayingHandicap(t *testing.T) {
	tests := []struct {
		name  string
		tee   Tee
		index float64
		want  int
	}{
		{name: "yellow scratch boundary below zero", tee: Yellow(), index: 0.0, want: -1},
		{name: "yellow first positive band", tee: Yellow(), index: 0.1, want: 0},
		{name: "yellow band lower bound is inclusive", tee: Yellow(), index: 15.7, want: 18},
		{name: "yellow band upper bound is inclusive", tee: Yellow(), index: 16.4, want: 18},
		{name: "yellow next band", tee: Yellow(), index: 16.5, want: 19},
		{name: "yellow top of table", tee: Yellow(), index: 54.0, want: 62},
		{name: "yellow plus handicap", tee: Yellow(), index: -3.6, want: -5},
		{name: "yellow above table uses formula", tee: Yellow(), index: 55.0, want: 63},
		{name: "yellow below table uses formula", tee: Yellow(), index: -5.0, want: -6},
		{name: "yellow between bands uses formula", tee: Yellow(), index: 12.15, want: 13},
		{name: "red scratch", tee: Red(), index: 0.0, want: 1},
		{name: "red mid table", tee: Red(), index: 15.0, want: 18},
		{name: "red above table uses formula", tee: Red(), index: 60.0, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tee.PlayingHandicap(tt.index))
		})
	}
}

func TestTee_PlayingHandicapIsMonotonic(t *testing.T) {
	for _, tee := range []Tee{Yellow(), Red()} {
		t.Run(tee.Key, func(t *testing.T) {
			prev := tee.PlayingHandicap(-10.0)
			for k := -100; k <= 600; k++ {
				index := float64(k) / 10
				got := tee.PlayingHandicap(index)
				require.GreaterOrEqualf(t, got, prev, "handicap dropped at index %.1f", index)
				prev = got
			}
		})
	}
}

func TestTee_BuiltInTablesCoverTheirRange(t *testing.T) {
	for _, tee := range []Tee{Yellow(), Red()} {
		t.Run(tee.Key, func(t *testing.T) {
			require.NoError(t, tee.Validate())
			for k := -36; k <= 540; k++ {
				index := float64(k) / 10
				found := false
				for _, b := range tee.Bands {
					if index >= b.From && index <= b.To {
						found = true
						break
					}
				}
				assert.Truef(t, found, "index %.1f not covered by any band", index)
			}
		})
	}
}

func TestTee_Validate(t *testing.T) {
	base := Tee{Key: "blue", CourseRating: 72.0, Slope: 120, Par: 72}

	tests := []struct {
		name    string
		mutate  func(*Tee)
		wantErr bool
	}{
		{name: "no bands is valid", mutate: func(*Tee) {}},
		{name: "missing key", mutate: func(t *Tee) { t.Key = "" }, wantErr: true},
		{name: "zero slope", mutate: func(t *Tee) { t.Slope = 0 }, wantErr: true},
		{name: "zero par", mutate: func(t *Tee) { t.Par = 0 }, wantErr: true},
		{
			name: "inverted band",
			mutate: func(t *Tee) {
				t.Bands = []Band{{From: 2.0, To: 1.0, CourseHandicap: 1}}
			},
			wantErr: true,
		},
		{
			name: "overlapping bands",
			mutate: func(t *Tee) {
				t.Bands = []Band{{From: 0, To: 1.0, CourseHandicap: 0}, {From: 1.0, To: 2.0, CourseHandicap: 1}}
			},
			wantErr: true,
		},
		{
			name: "decreasing handicap",
			mutate: func(t *Tee) {
				t.Bands = []Band{{From: 0, To: 1.0, CourseHandicap: 2}, {From: 1.1, To: 2.0, CourseHandicap: 1}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tee := base
			tt.mutate(&tee)
			err := tee.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTee)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadTees(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tees.toml")
	content := `
[[tees]]
key = "white"
name = "White"
course_rating = 70.0
slope = 113
par = 72
bands = [
  { from = 0.0, to = 9.9, course_handicap = 5 },
  { from = 10.0, to = 19.9, course_handicap = 15 },
]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := LoadTees(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "white", "yellow"}, reg.Keys())

	white, ok := reg.Tee("white")
	require.True(t, ok)
	assert.Equal(t, 5, white.PlayingHandicap(3.0))
	assert.Equal(t, 15, white.PlayingHandicap(19.9))
	// 25 * 113/113 + (70 - 72)
	assert.Equal(t, 23, white.PlayingHandicap(25.0))
}

func TestLoadTees_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTees(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[tees]]\nkey = \"x\"\nslope = 0\npar = 72\n"), 0o600))
	_, err = LoadTees(bad)
	assert.ErrorIs(t, err, ErrInvalidTee)

	dup := filepath.Join(dir, "dup.toml")
	require.NoError(t, os.WriteFile(dup, []byte("[[tees]]\nkey = \"x\"\nslope = 113\npar = 72\n[[tees]]\nkey = \"x\"\nslope = 113\npar = 72\n"), 0o600))
	_, err = LoadTees(dup)
	assert.ErrorIs(t, err, ErrInvalidTee)
}
