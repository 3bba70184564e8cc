package pipeline

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tcpexport "tcp-export"
)

// ResultFilename derives the document file name from athlete and date:
// SafeName_YYYY-MM-DD_vo2max.json.
func ResultFilename(result *tcpexport.TestResult) string {
	name := result.AthleteName
	if name == "" {
		name = "Unknown"
	}
	date := result.TestDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return fmt.Sprintf("%s_%s_vo2max.json", sanitizeName(name), date)
}

// sanitizeName keeps letters, digits, underscores and dashes; spaces and
// anything else become underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ValidateStructure checks a document for the fields the downstream
// loader requires before it is worth uploading.
func ValidateStructure(result *tcpexport.TestResult) Validation {
	var v Validation
	if result.UserID == "" {
		v.Errors = append(v.Errors, "user_id (email) is empty")
	}
	if result.AthleteName == "" {
		v.Errors = append(v.Errors, "missing required field: athlete_name")
	}
	if result.TestDate == "" {
		v.Errors = append(v.Errors, "missing required field: test_date")
	}
	if result.TestType == "" {
		v.Errors = append(v.Errors, "missing required field: test_type")
	}
	if result.Seuils.VMA.Valeur == nil {
		v.Warnings = append(v.Warnings, "VMA missing from summary table")
	}
	if result.Seuils.SV1.FC == nil && result.Seuils.SV1.Allure == nil {
		v.Warnings = append(v.Warnings, "seuil SV1 is empty")
	}
	if result.Seuils.SV2.FC == nil && result.Seuils.SV2.Allure == nil {
		v.Warnings = append(v.Warnings, "seuil SV2 is empty")
	}
	if result.Graphiques.Graphique1 == nil && result.Graphiques.Graphique2 == nil {
		v.Warnings = append(v.Warnings, "no graph data available")
	}
	v.Valid = len(v.Errors) == 0
	return v
}
