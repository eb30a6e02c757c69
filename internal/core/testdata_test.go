package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// exampleCSV is the three-row dataset used throughout the chart tests.
const exampleCSV = `location,time,life_expectancy,fertility_rate
AUS,2000,45,2.1
AUS,2001,46,2.0
USA,2000,50,3.0
`

func mustParse(t *testing.T, data string) *Dataset {
	t.Helper()
	rows, err := ParseCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	return NewDataset(rows, "test")
}
