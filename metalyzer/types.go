package metalyzer

// FilenameMetadata is the athlete identity and timestamp encoded in the
// export file name. All fields are empty when the name does not follow the
// vendor convention.
type FilenameMetadata struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	DateTime  string `json:"datetime"`
}

// Sample is one row of the measurement stream: the raw clock text, the
// elapsed seconds derived from it, and the coerced value per column header.
type Sample struct {
	T              string           `json:"t"`
	ElapsedSeconds float64          `json:"t_seconds"`
	Values         map[string]Value `json:"values"`
}

// ParsedDocument holds everything extracted from one TCP export file.
// Sections missing from the workbook come back as empty maps or a nil
// measurement slice, never as an error.
type ParsedDocument struct {
	FilenameMetadata FilenameMetadata
	PatientMetadata  map[string]string
	BioMetadata      map[string]string
	TestMetadata     map[string]string
	SummaryTable     map[string]map[string]Value
	Measurements     []Sample
}

// TestFileInfo describes one export file found by a folder scan.
type TestFileInfo struct {
	FilenameMetadata
	Path     string `json:"filepath"`
	Filename string `json:"filename"`
}
