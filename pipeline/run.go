// Package pipeline orchestrates one export: parse the TCP XML, merge with
// the operator profile, validate, and write the result document plus the
// tabular curve artifacts.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	tcpexport "tcp-export"
	"tcp-export/metalyzer"
)

// Run executes the pipeline for a single export file.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.XMLPath) == "" {
		return nil, fmt.Errorf("xml path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := metalyzer.Parse(opts.XMLPath)
	if err != nil {
		return nil, err
	}

	var input tcpexport.ManualInput
	if opts.ProfilePath != "" {
		input, err = LoadProfile(opts.ProfilePath)
		if err != nil {
			return nil, err
		}
	}

	result := tcpexport.Transform(doc, input)
	validation := ValidateStructure(result)
	for _, w := range validation.Warnings {
		logger.Warn("structure warning",
			zap.String("xml", opts.XMLPath),
			zap.String("warning", w))
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	name := opts.OutName
	if name == "" {
		name = ResultFilename(result)
	}
	resultPath := filepath.Join(opts.OutDir, name)
	if !opts.Overwrite {
		if _, err := os.Stat(resultPath); err == nil {
			return nil, fmt.Errorf("result file already exists: %s", resultPath)
		}
	}
	if err := writeJSON(resultPath, result); err != nil {
		return nil, fmt.Errorf("write result document: %w", err)
	}

	out := &Result{OutputDir: opts.OutDir, ResultPath: resultPath, Validation: validation}

	aggregated := tcpexport.AggregateMeasurements(doc.Measurements, tcpexport.GraphIntervalSeconds)
	if len(aggregated) > 0 {
		curvePath := strings.TrimSuffix(resultPath, filepath.Ext(resultPath)) + "_curves." + format
		switch format {
		case "csv":
			err = writeCurveCSV(curvePath, aggregated)
		default:
			err = writeCurveParquet(curvePath, aggregated)
		}
		if err != nil {
			return nil, fmt.Errorf("write curve samples: %w", err)
		}
		out.CurveSamplesPath = curvePath
	}

	if opts.Report {
		reportPath := strings.TrimSuffix(resultPath, filepath.Ext(resultPath)) + ".xlsx"
		if err := writeReport(reportPath, result, aggregated); err != nil {
			return nil, fmt.Errorf("write xlsx report: %w", err)
		}
		out.ReportPath = reportPath
	}

	logger.Info("export complete",
		zap.String("xml", opts.XMLPath),
		zap.String("result", resultPath),
		zap.Int("measurements", len(doc.Measurements)),
		zap.Int("buckets", len(aggregated)))
	return out, nil
}

// LoadProfile reads an operator profile JSON file.
func LoadProfile(path string) (tcpexport.ManualInput, error) {
	var input tcpexport.ManualInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("read profile: %w", err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return input, nil
}

// ExportBatch runs the pipeline for every item. One failing file never
// aborts its siblings.
func ExportBatch(items []BatchItem, opts Options) BatchResult {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	res := BatchResult{Total: len(items)}
	for i, item := range items {
		itemOpts := opts
		itemOpts.XMLPath = item.XMLPath
		itemOpts.ProfilePath = item.ProfilePath
		itemOpts.OutName = ""
		r, err := Run(itemOpts)
		if err != nil {
			logger.Warn("batch item failed",
				zap.Int("index", i+1),
				zap.Int("total", len(items)),
				zap.String("xml", item.XMLPath),
				zap.Error(err))
			res.Failed = append(res.Failed, BatchEntry{XMLPath: item.XMLPath, Error: err.Error()})
			continue
		}
		logger.Info("batch item exported",
			zap.Int("index", i+1),
			zap.Int("total", len(items)),
			zap.String("result", r.ResultPath))
		res.Success = append(res.Success, BatchEntry{XMLPath: item.XMLPath, Path: r.ResultPath})
	}
	return res
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
