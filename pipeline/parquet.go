package pipeline

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	tcpexport "tcp-export"
)

// curveColumns is the fixed column order of the tabular curve artifacts.
var curveColumns = []string{"FC", "V'O2", "V'CO2", "V'E", "BF", "RER"}

type curveParquetRow struct {
	TSeconds float64 `parquet:"name=t_seconds, type=DOUBLE"`
	FC       float64 `parquet:"name=fc_bpm, type=DOUBLE"`
	VO2      float64 `parquet:"name=vo2_l_min, type=DOUBLE"`
	VCO2     float64 `parquet:"name=vco2_l_min, type=DOUBLE"`
	VE       float64 `parquet:"name=ve_l_min, type=DOUBLE"`
	BF       float64 `parquet:"name=bf_min, type=DOUBLE"`
	RER      float64 `parquet:"name=rer, type=DOUBLE"`
}

func writeCurveParquet(path string, samples []tcpexport.AggregatedSample) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(curveParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := curveParquetRow{
			TSeconds: s.TSeconds,
			FC:       fieldOrNaN(s, "FC"),
			VO2:      fieldOrNaN(s, "V'O2"),
			VCO2:     fieldOrNaN(s, "V'CO2"),
			VE:       fieldOrNaN(s, "V'E"),
			BF:       fieldOrNaN(s, "BF"),
			RER:      fieldOrNaN(s, "RER"),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func fieldOrNaN(s tcpexport.AggregatedSample, key string) float64 {
	if v, ok := s.Values[key]; ok {
		return v
	}
	return math.NaN()
}

func writeCurveCSV(path string, samples []tcpexport.AggregatedSample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"t_seconds", "fc_bpm", "vo2_l_min", "vco2_l_min", "ve_l_min", "bf_min", "rer"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(s.TSeconds, 'f', -1, 64))
		for _, col := range curveColumns {
			if v, ok := s.Values[col]; ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
