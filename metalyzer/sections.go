package metalyzer

import "strings"

// Section headings written by the vendor software. Lookup is by substring
// because headings carry trailing annotations in some firmware revisions.
const (
	sectionAdminData       = "Données administratives"
	sectionPatientData     = "Données du patient"
	sectionBioData         = "Données de base Biologiques et Médicales"
	sectionTestData        = "Données test"
	sectionSummaryTable    = "Tableau Résumé"
	sectionMeasurementData = "Measurement Data"
)

// nextSectionMarkers open a following block when found right after a blank
// row inside a key/value section.
var nextSectionMarkers = []string{"Données", "Tableau", "Valeur"}

// summaryEndMarkers terminate the summary table body.
var summaryEndMarkers = []string{"Valeur de pente", "Measurement Data"}

func findSectionStart(grid [][]string, heading string) int {
	for i, cells := range grid {
		if len(cells) > 0 && strings.Contains(cells[0], heading) {
			return i
		}
	}
	return -1
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func rowHasMarker(cells []string, markers []string) bool {
	for _, c := range cells {
		if c == "" {
			continue
		}
		for _, m := range markers {
			if strings.Contains(c, m) {
				return true
			}
		}
	}
	return false
}

// parseKeyValues extracts key/value rows below a section heading. The value
// sits in the third cell when the vendor inserts a spacer column, otherwise
// in the second. A blank row terminates the section only when the row after
// it is absent, blank too, or opens the next block; lone blank rows occur
// inside a logical section and are skipped.
func parseKeyValues(grid [][]string, start int) map[string]string {
	out := map[string]string{}
	for i := start + 1; i < len(grid); i++ {
		cells := grid[i]
		if rowEmpty(cells) {
			if i+1 >= len(grid) || rowEmpty(grid[i+1]) || rowHasMarker(grid[i+1], nextSectionMarkers) {
				break
			}
			continue
		}
		if len(cells) >= 2 && cells[0] != "" {
			value := cells[1]
			if len(cells) > 2 && cells[2] != "" {
				value = cells[2]
			}
			out[cells[0]] = value
		}
	}
	return out
}

// parseSummaryTable extracts the per-variable summary block: a header row
// marked "Variable", then data rows keyed by their first cell with every
// column coerced. Stops on a double blank row or a summary end marker.
func parseSummaryTable(grid [][]string) map[string]map[string]Value {
	result := map[string]map[string]Value{}
	idx := findSectionStart(grid, sectionSummaryTable)
	if idx == -1 {
		return result
	}

	var headers []string
	i := idx + 1
	for i < len(grid) {
		cells := grid[i]
		if len(cells) > 0 && strings.Contains(cells[0], "Variable") {
			headers = cells
			i++
			break
		}
		i++
	}
	if headers == nil {
		return result
	}

	for ; i < len(grid); i++ {
		cells := grid[i]
		if rowEmpty(cells) {
			if i+1 >= len(grid) || rowEmpty(grid[i+1]) {
				break
			}
			continue
		}
		if rowHasMarker(cells, summaryEndMarkers) {
			break
		}
		if len(cells) >= 2 && cells[0] != "" {
			row := make(map[string]Value, len(headers))
			for j, h := range headers {
				if j == 0 || h == "" || j >= len(cells) {
					continue
				}
				row[h] = Coerce(cells[j])
			}
			result[cells[0]] = row
		}
	}
	return result
}
