package pgsource

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingQuerier struct {
	err error
	sql string
}

func (f *failingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.sql = sql
	return nil, f.err
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		want    string
		wantErr bool
	}{
		{"plain", "life_stats", `postgres:"life_stats"`, false},
		{"schema qualified", "public.life_stats", `postgres:"public"."life_stats"`, false},
		{"quote escaped", `odd"name`, `postgres:"odd""name"`, false},
		{"empty", "", "", true},
		{"only dots", "..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(nil, tt.table)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.String())
		})
	}
}

func TestSource_Query(t *testing.T) {
	src, err := New(nil, "public.life_stats")
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "location"::text, "time"::float8, "life_expectancy"::float8, "fertility_rate"::float8 FROM "public"."life_stats"`,
		src.query())
}

func TestSource_LoadQueryError(t *testing.T) {
	boom := errors.New("connection refused")
	q := &failingQuerier{err: boom}
	src, err := New(q, "life_stats")
	require.NoError(t, err)

	ds, err := src.Load(context.Background())
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `query postgres:"life_stats"`)
	assert.Equal(t, src.query(), q.sql)
}

func TestRecord_ToRow(t *testing.T) {
	rec := record{
		Location:       pgtype.Text{String: "AUS", Valid: true},
		Time:           pgtype.Float8{Float64: 2000, Valid: true},
		LifeExpectancy: pgtype.Float8{Float64: 45, Valid: true},
		FertilityRate:  pgtype.Float8{},
	}

	row := rec.toRow()
	assert.Equal(t, "AUS", row.Location)
	assert.Equal(t, 2000.0, row.Time)
	assert.Equal(t, 45.0, row.LifeExpectancy)
	assert.True(t, math.IsNaN(row.FertilityRate))
}
