package metalyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var filenamePattern = regexp.MustCompile(
	`^TCP__([A-Z]+)_([A-Za-zÀ-ÿ]+)_(\d{4})\.(\d{2})\.(\d{2})_(\d{2})\.(\d{2})\.(\d{2})_\.xml$`)

// ParseFilename extracts athlete identity and the test timestamp from the
// vendor file name convention
// TCP__LASTNAME_Firstname_YYYY.MM.DD_HH.MM.SS_.xml. A name outside the
// convention yields empty fields, never an error.
func ParseFilename(name string) FilenameMetadata {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return FilenameMetadata{}
	}
	date := fmt.Sprintf("%s-%s-%s", m[3], m[4], m[5])
	clock := fmt.Sprintf("%s:%s:%s", m[6], m[7], m[8])
	return FilenameMetadata{
		LastName:  m[1],
		FirstName: m[2],
		Date:      date,
		Time:      clock,
		DateTime:  date + "T" + clock,
	}
}

// ListTests scans a folder for TCP export files and returns their filename
// metadata, newest test first.
func ListTests(dir string) ([]TestFileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan test folder: %w", err)
	}
	tests := make([]TestFileInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "TCP__") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		tests = append(tests, TestFileInfo{
			FilenameMetadata: ParseFilename(name),
			Path:             filepath.Join(dir, name),
			Filename:         name,
		})
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].DateTime != tests[j].DateTime {
			return tests[i].DateTime > tests[j].DateTime
		}
		return tests[i].Filename < tests[j].Filename
	})
	return tests, nil
}
