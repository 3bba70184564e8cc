package pipeline

import "go.uber.org/zap"

// Options configures one export run.
type Options struct {
	// XMLPath is the TCP export file to parse.
	XMLPath string
	// ProfilePath is the operator profile JSON. Optional; an empty path
	// means an empty profile.
	ProfilePath string
	// OutDir receives every artifact.
	OutDir string
	// OutName overrides the derived result file name when set.
	OutName string
	// Format selects the curve-sample artifact: "parquet" (default) or
	// "csv".
	Format string
	// Report also writes the XLSX summary workbook.
	Report bool
	// Overwrite allows replacing an existing result file.
	Overwrite bool
	// Logger receives progress and warnings. Nil means silent.
	Logger *zap.Logger
}

// Result lists the artifacts one run produced.
type Result struct {
	OutputDir        string     `json:"output_dir"`
	ResultPath       string     `json:"result_path"`
	CurveSamplesPath string     `json:"curve_samples_path,omitempty"`
	ReportPath       string     `json:"report_path,omitempty"`
	Validation       Validation `json:"validation"`
}

// Validation is the structural check of a document before upload. Errors
// block an upload, warnings do not.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// BatchItem pairs one export file with its profile.
type BatchItem struct {
	XMLPath     string `json:"xml_path"`
	ProfilePath string `json:"profile_path"`
}

// BatchEntry is the outcome for one batch item.
type BatchEntry struct {
	XMLPath string `json:"xml_path"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult summarizes a batch export.
type BatchResult struct {
	Success []BatchEntry `json:"success"`
	Failed  []BatchEntry `json:"failed"`
	Total   int          `json:"total"`
}
