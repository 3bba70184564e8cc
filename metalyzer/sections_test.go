package metalyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSectionStartSubstring(t *testing.T) {
	grid := [][]string{
		{"préambule"},
		{"Données test (complément)"},
	}
	assert.Equal(t, 1, findSectionStart(grid, "Données test"))
	assert.Equal(t, -1, findSectionStart(grid, "Tableau Résumé"))
}

func TestParseKeyValuesStopsAtGridEnd(t *testing.T) {
	grid := [][]string{
		{"Données test"},
		{"a", "1"},
		{""},
	}
	got := parseKeyValues(grid, 0)
	assert.Equal(t, map[string]string{"a": "1"}, got)
}

func TestParseKeyValuesBlankThenMarkerStops(t *testing.T) {
	grid := [][]string{
		{"Données test"},
		{"a", "1"},
		{""},
		{"Valeur de pente"},
		{"b", "2"},
	}
	got := parseKeyValues(grid, 0)
	assert.Equal(t, map[string]string{"a": "1"}, got)
}

func TestParseKeyValuesLoneBlankContinues(t *testing.T) {
	grid := [][]string{
		{"Données test"},
		{"a", "1"},
		{""},
		{"b", "2"},
	}
	got := parseKeyValues(grid, 0)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
}

func TestParseSummaryTableDoubleBlankStops(t *testing.T) {
	grid := [][]string{
		{"Tableau Résumé"},
		{"Variable", "Max"},
		{"v", "15"},
		{""},
		{""},
		{"ghost", "99"},
	}
	got := parseSummaryTable(grid)
	assert.Contains(t, got, "v")
	assert.NotContains(t, got, "ghost")
}

func TestParseSummaryTableWithoutHeaderRow(t *testing.T) {
	grid := [][]string{
		{"Tableau Résumé"},
		{"v", "15"},
	}
	assert.Empty(t, parseSummaryTable(grid))
}
