package core

import (
	"errors"
	"fmt"
)

// ErrUnknownCountry is returned when a selection matches no rows.
var ErrUnknownCountry = errors.New("unknown country")

// Countries returns the distinct locations in first-seen order.
func (d *Dataset) Countries() []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, row := range d.Rows() {
		if _, ok := seen[row.Location]; ok {
			continue
		}
		seen[row.Location] = struct{}{}
		countries = append(countries, row.Location)
	}
	return countries
}

// HasCountry reports whether any row belongs to location.
func (d *Dataset) HasCountry(location string) bool {
	for _, row := range d.Rows() {
		if row.Location == location {
			return true
		}
	}
	return false
}

// FilterByLocation returns the rows for one location, preserving load order.
func (d *Dataset) FilterByLocation(location string) []Row {
	var out []Row
	for _, row := range d.Rows() {
		if row.Location == location {
			out = append(out, row)
		}
	}
	return out
}

// CountryRows is like FilterByLocation but fails with ErrUnknownCountry
// when the location has no rows.
func (d *Dataset) CountryRows(location string) ([]Row, error) {
	rows := d.FilterByLocation(location)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, location)
	}
	return rows, nil
}

// DefaultCountry returns preferred when the dataset has it, otherwise the
// first country. It returns "" for an empty dataset.
func (d *Dataset) DefaultCountry(preferred string) string {
	if preferred != "" && d.HasCountry(preferred) {
		return preferred
	}
	countries := d.Countries()
	if len(countries) == 0 {
		return ""
	}
	return countries[0]
}

// Column extracts one numeric field from every row.
func Column(rows []Row, field func(Row) float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = field(row)
	}
	return out
}

// Field accessors for use with Column and the chart renderers.
func Year(r Row) float64           { return r.Time }
func LifeExpectancy(r Row) float64 { return r.LifeExpectancy }
func FertilityRate(r Row) float64  { return r.FertilityRate }
