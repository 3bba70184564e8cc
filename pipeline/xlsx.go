package pipeline

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	tcpexport "tcp-export"
)

// writeReport renders the operator-facing workbook: a summary sheet with
// identity and thresholds, and a sheet with the averaged curve samples.
func writeReport(path string, result *tcpexport.TestResult, samples []tcpexport.AggregatedSample) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Résumé"
	const curveSheet = "Courbes"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Athlète", result.AthleteName},
		{"Date du test", result.TestDate},
		{"Type", result.TestType},
		{"Email", result.UserID},
		{},
		{"Seuil", "FC (bpm)", "Allure (km/h)", "VO2 (ml/kg/min)", "% VMA"},
		{"SV1", intCell(result.Seuils.SV1.FC), floatCell(result.Seuils.SV1.Allure),
			floatCell(result.Seuils.SV1.VO2), intCell(result.Seuils.SV1.PourcentageVMA)},
		{"SV2", intCell(result.Seuils.SV2.FC), floatCell(result.Seuils.SV2.Allure),
			floatCell(result.Seuils.SV2.VO2), intCell(result.Seuils.SV2.PourcentageVMA)},
		{"VO2 max", intCell(result.Seuils.VO2Max.FCMax), nil, floatCell(result.Seuils.VO2Max.Valeur), nil},
		{"VMA", nil, floatCell(result.Seuils.VMA.Valeur), nil, nil},
	}
	if result.TestLactate.Actif {
		rows = append(rows, []any{}, []any{"Vitesse (km/h)", "Lactate (mmol/L)"})
		for _, m := range result.TestLactate.Mesures {
			rows = append(rows, []any{m.Vitesse, m.Lactate})
		}
	}
	if err := writeSheetRows(f, summarySheet, rows); err != nil {
		return err
	}

	if len(samples) > 0 {
		if _, err := f.NewSheet(curveSheet); err != nil {
			return err
		}
		curveRows := make([][]any, 0, len(samples)+1)
		curveRows = append(curveRows, []any{"t (s)", "FC", "V'O2", "V'CO2", "V'E", "BF", "RER"})
		for _, s := range samples {
			row := []any{s.TSeconds}
			for _, col := range curveColumns {
				if v, ok := s.Values[col]; ok {
					row = append(row, v)
				} else {
					row = append(row, nil)
				}
			}
			curveRows = append(curveRows, row)
		}
		if err := writeSheetRows(f, curveSheet, curveRows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func intCell(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
