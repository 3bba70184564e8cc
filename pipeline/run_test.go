package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tcpexport "tcp-export"
)

func fixtureXML(t *testing.T) []byte {
	t.Helper()
	rows := [][]string{
		{"Données administratives"},
		{"Nom", "DOE"},
		{"Prénom", "Jane"},
		{"", ""},
		{"Données de base Biologiques et Médicales"},
		{"Poids", "68,2 kg"},
		{""},
		{"Tableau Résumé"},
		{"Variable", "Valeurs Maximales Absolues"},
		{"v", "15,0"},
		{""},
		{"Valeur de pente"},
		{"Measurement Data"},
		{"t", "FC", "V'O2", "V'E"},
		{"h:mm:ss", "bpm", "L/min", "L/min"},
		{"0:00:00", "100", "1,2", "30"},
		{"0:00:05", "110", "1,4", "32"},
		{"0:00:16", "150", "2,0", "45"},
	}
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">`)
	b.WriteString(`<Worksheet ss:Name="MetasoftStudio"><Table>`)
	for _, row := range rows {
		b.WriteString("<Row>")
		for _, cell := range row {
			b.WriteString(`<Cell><Data ss:Type="String">`)
			_ = xml.EscapeText(&b, []byte(cell))
			b.WriteString(`</Data></Cell>`)
		}
		b.WriteString("</Row>")
	}
	b.WriteString(`</Table></Worksheet></Workbook>`)
	return []byte(b.String())
}

func writeFixture(t *testing.T, dir string) (xmlPath, profilePath string) {
	t.Helper()
	xmlPath = filepath.Join(dir, "TCP__DOE_Jane_2024.03.15_09.30.45_.xml")
	require.NoError(t, os.WriteFile(xmlPath, fixtureXML(t), 0o644))

	input := tcpexport.ManualInput{Email: "jane@example.com"}
	input.Identity.LastName = "Doe"
	input.Identity.FirstName = "Jane"
	sv1HR := 150
	pace := 12.0
	input.StressTest.Thresholds.SV1 = tcpexport.Threshold{HRBPM: &sv1HR, PaceKMH: &pace}

	data, err := json.Marshal(input)
	require.NoError(t, err)
	profilePath = filepath.Join(dir, "jane_profile.json")
	require.NoError(t, os.WriteFile(profilePath, data, 0o644))
	return xmlPath, profilePath
}

func TestRunWritesResultAndCurveCSV(t *testing.T) {
	dir := t.TempDir()
	xmlPath, profilePath := writeFixture(t, dir)
	outDir := filepath.Join(dir, "out")

	res, err := Run(Options{
		XMLPath:     xmlPath,
		ProfilePath: profilePath,
		OutDir:      outDir,
		Format:      "csv",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "DOE_Jane_2024-03-15_vo2max.json"), res.ResultPath)
	assert.True(t, res.Validation.Valid, "validation errors: %v", res.Validation.Errors)

	var result tcpexport.TestResult
	data, err := os.ReadFile(res.ResultPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "jane@example.com", result.UserID)
	assert.Equal(t, "DOE Jane", result.AthleteName)
	assert.Equal(t, "VO2max", result.TestType)
	require.NotNil(t, result.Seuils.VMA.Valeur)
	assert.Equal(t, 15.0, *result.Seuils.VMA.Valeur)
	require.NotNil(t, result.Seuils.SV1.PourcentageVMA)
	assert.Equal(t, 80, *result.Seuils.SV1.PourcentageVMA)

	require.NotEmpty(t, res.CurveSamplesPath)
	f, err := os.Open(res.CurveSamplesPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + buckets at 15s and 30s
	assert.Equal(t, []string{"t_seconds", "fc_bpm", "vo2_l_min", "vco2_l_min", "ve_l_min", "bf_min", "rer"}, rows[0])
	assert.Equal(t, "15", rows[1][0])
	assert.Equal(t, "105", rows[1][1])
	assert.Equal(t, "", rows[1][3]) // no V'CO2 column in the stream
	assert.Equal(t, "30", rows[2][0])
}

func TestRunWithoutProfileStillExports(t *testing.T) {
	dir := t.TempDir()
	xmlPath, _ := writeFixture(t, dir)

	res, err := Run(Options{XMLPath: xmlPath, OutDir: filepath.Join(dir, "out"), Format: "csv"})
	require.NoError(t, err)

	// Empty email blocks upload but not export.
	assert.False(t, res.Validation.Valid)
	assert.Contains(t, res.Validation.Errors, "user_id (email) is empty")
	_, err = os.Stat(res.ResultPath)
	assert.NoError(t, err)
}

func TestRunRefusesOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	xmlPath, profilePath := writeFixture(t, dir)
	outDir := filepath.Join(dir, "out")
	opts := Options{XMLPath: xmlPath, ProfilePath: profilePath, OutDir: outDir, Format: "csv"}

	_, err := Run(opts)
	require.NoError(t, err)
	_, err = Run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	opts.Overwrite = true
	_, err = Run(opts)
	assert.NoError(t, err)
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	xmlPath, _ := writeFixture(t, dir)
	_, err := Run(Options{XMLPath: xmlPath, OutDir: dir, Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRunWritesXLSXReport(t *testing.T) {
	dir := t.TempDir()
	xmlPath, profilePath := writeFixture(t, dir)

	res, err := Run(Options{
		XMLPath:     xmlPath,
		ProfilePath: profilePath,
		OutDir:      filepath.Join(dir, "out"),
		Format:      "csv",
		Report:      true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ReportPath)
	assert.Equal(t, ".xlsx", filepath.Ext(res.ReportPath))
	info, err := os.Stat(res.ReportPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	xmlPath, profilePath := writeFixture(t, dir)
	badPath := filepath.Join(dir, "TCP__BAD_File_2024.01.01_00.00.00_.xml")
	require.NoError(t, os.WriteFile(badPath, []byte("not xml at all"), 0o644))

	res := ExportBatch([]BatchItem{
		{XMLPath: xmlPath, ProfilePath: profilePath},
		{XMLPath: badPath},
	}, Options{OutDir: filepath.Join(dir, "out"), Format: "csv", Overwrite: true})

	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Success, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, badPath, res.Failed[0].XMLPath)
	assert.NotEmpty(t, res.Failed[0].Error)
}
