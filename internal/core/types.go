package core

import (
	"time"

	"github.com/google/uuid"
)

// Required column names. Header matching is case-insensitive.
const (
	ColLocation       = "location"
	ColTime           = "time"
	ColLifeExpectancy = "life_expectancy"
	ColFertilityRate  = "fertility_rate"
)

// RequiredColumns lists the columns every source must provide.
var RequiredColumns = []string{ColLocation, ColTime, ColLifeExpectancy, ColFertilityRate}

// Row is one country-year observation.
//
// Numeric fields hold NaN when the source value was blank or not a number.
type Row struct {
	Location       string
	Time           float64
	LifeExpectancy float64
	FertilityRate  float64

	// Extra keeps every non-required column keyed by its header name.
	Extra map[string]string
}

// Dataset is an ordered, read-only set of rows from a single load.
type Dataset struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time

	rows []Row
}

// NewDataset wraps rows in a Dataset with a fresh ID.
// The slice is owned by the Dataset afterwards and must not be modified.
func NewDataset(rows []Row, source string) *Dataset {
	return &Dataset{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now(),
		rows:     rows,
	}
}

// Rows returns all rows in load order.
// Callers must treat the returned slice as read-only.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	return d.rows
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Info is a JSON-friendly summary of a Dataset.
type Info struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Countries int       `json:"countries"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Info summarizes the dataset.
func (d *Dataset) Info() Info {
	return Info{
		ID:        d.ID.String(),
		Source:    d.Source,
		Rows:      d.Len(),
		Countries: len(d.Countries()),
		LoadedAt:  d.LoadedAt,
	}
}
