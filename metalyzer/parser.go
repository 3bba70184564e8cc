// Package metalyzer reads MetaLyzer TCP exports, the SpreadsheetML 2003
// files the CPET software writes. One export is a single worksheet holding
// loosely structured metadata sections, a per-variable summary table and
// the breath-by-breath measurement stream.
package metalyzer

import (
	"os"
	"path/filepath"
)

// Parse reads one TCP export from disk. Absent sections come back empty;
// only unreadable input, malformed XML or a missing worksheet is fatal.
func Parse(path string) (*ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return ParseBytes(filepath.Base(path), data)
}

// ParseBytes parses an in-memory export. Filename metadata is resolved
// from the supplied name, which may be empty.
func ParseBytes(name string, data []byte) (*ParsedDocument, error) {
	grid, err := readCellGrid(data)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	doc := documentFromGrid(grid)
	doc.FilenameMetadata = ParseFilename(name)
	return doc, nil
}

func documentFromGrid(grid [][]string) *ParsedDocument {
	return &ParsedDocument{
		PatientMetadata: parsePatientData(grid),
		BioMetadata:     parseKeyValueSection(grid, sectionBioData),
		TestMetadata:    parseKeyValueSection(grid, sectionTestData),
		SummaryTable:    parseSummaryTable(grid),
		Measurements:    parseMeasurements(grid),
	}
}

// parsePatientData prefers the administrative block; older exports only
// carry the patient block.
func parsePatientData(grid [][]string) map[string]string {
	idx := findSectionStart(grid, sectionAdminData)
	if idx == -1 {
		idx = findSectionStart(grid, sectionPatientData)
	}
	if idx == -1 {
		return map[string]string{}
	}
	return parseKeyValues(grid, idx)
}

func parseKeyValueSection(grid [][]string, heading string) map[string]string {
	idx := findSectionStart(grid, heading)
	if idx == -1 {
		return map[string]string{}
	}
	return parseKeyValues(grid, idx)
}
