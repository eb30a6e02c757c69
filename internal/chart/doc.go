// Package chart turns dataset rows into SVG chart models and renders them.
//
// Both charts share one geometry: a 500x500 canvas whose plotting area runs
// from 50 to 450 pixels on each axis. Scales are linear; the y scale is built
// over the inverted domain so larger values plot higher. Building a chart
// model ([NewLineChart], [NewScatterPlot]) is pure computation; the templ
// components in svg.go write the markup, and export.go renders the same
// models to PNG through go-chart.
package chart
