// Package core holds the dataset model for the life expectancy charts.
//
// This package contains the domain logic independent of any transport or
// rendering layer. It is used by the web handlers, the chartctl CLI and the
// tests without modification.
//
// # Data Flow
//
// A [Source] loads rows into an immutable [Dataset]:
//
//  1. The CSV reader is wrapped with BOM skipping and UTF-8 sanitization
//  2. The header row is matched case-insensitively against the required columns
//  3. Numeric cells are coerced with [ToNumber]; blanks and garbage become NaN
//  4. [NewDataset] stamps the rows with a fresh ID and load time
//
// The [Store] holds the current Dataset behind an atomic pointer. A reload
// parses a complete new Dataset and swaps it in, so readers never see a
// partially loaded one.
//
// # Derived Views
//
// Everything a chart needs is derived per call and never cached:
//
//   - [Dataset.Countries]: distinct locations in first-seen order
//   - [Dataset.FilterByLocation]: one country's rows in file order
//   - [FindMinMax]: axis limits over two value columns, NaN ignored
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE003: Source file errors (missing, unreadable, empty)
//   - CSV001-CSV002: Parse errors (bad structure, missing columns)
//   - DATA001-DATA002: Dataset state (not loaded, database source)
//   - CHART001: Unknown country selection
package core
