// Package pgsource loads the chart dataset from a PostgreSQL table.
package pgsource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// ErrNoTable is returned when the source is built without a table name.
var ErrNoTable = errors.New("no table configured")

// Querier is the subset of the pool the source needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Source reads location, time, life_expectancy and fertility_rate from a
// table. Rows keep the order the server returns them in.
type Source struct {
	db    Querier
	table pgx.Identifier
}

// New returns a source over table. The name may be schema-qualified
// ("public.life_stats").
func New(db Querier, table string) (*Source, error) {
	ident := parseIdentifier(table)
	if len(ident) == 0 {
		return nil, ErrNoTable
	}
	return &Source{db: db, table: ident}, nil
}

// record is one result row before conversion.
type record struct {
	Location       pgtype.Text
	Time           pgtype.Float8
	LifeExpectancy pgtype.Float8
	FertilityRate  pgtype.Float8
}

// Load runs the query and returns a fresh Dataset.
func (s *Source) Load(ctx context.Context) (*core.Dataset, error) {
	rows, err := s.db.Query(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[record])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s, err)
	}

	out := make([]core.Row, len(records))
	for i, rec := range records {
		out[i] = rec.toRow()
	}
	return core.NewDataset(out, s.String()), nil
}

// String names the source for logs and dataset info.
func (s *Source) String() string {
	return "postgres:" + s.table.Sanitize()
}

func (s *Source) query() string {
	cols := make([]string, len(core.RequiredColumns))
	for i, name := range core.RequiredColumns {
		cast := "::float8"
		if name == core.ColLocation {
			cast = "::text"
		}
		cols[i] = pgx.Identifier{name}.Sanitize() + cast
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + s.table.Sanitize()
}

func (r record) toRow() core.Row {
	return core.Row{
		Location:       r.Location.String,
		Time:           float(r.Time),
		LifeExpectancy: float(r.LifeExpectancy),
		FertilityRate:  float(r.FertilityRate),
	}
}

// float maps NULL to NaN, matching an unparseable CSV cell.
func float(v pgtype.Float8) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func parseIdentifier(name string) pgx.Identifier {
	var ident pgx.Identifier
	for _, part := range strings.Split(strings.TrimSpace(name), ".") {
		if part != "" {
			ident = append(ident, part)
		}
	}
	return ident
}
