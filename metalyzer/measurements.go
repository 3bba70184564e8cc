package metalyzer

import (
	"regexp"
	"strconv"
	"strings"
)

var measurementTimePattern = regexp.MustCompile(`^\d+:\d+:\d+`)

// parseMeasurements extracts the breath-by-breath time series. The layout
// is fixed: a header row whose first cell is exactly "t", a units row that
// is discarded, then data rows until the first row whose leading cell is
// not a clock value.
func parseMeasurements(grid [][]string) []Sample {
	idx := findSectionStart(grid, sectionMeasurementData)
	if idx == -1 {
		return nil
	}

	var headers []string
	i := idx + 1
	for i < len(grid) {
		cells := grid[i]
		if len(cells) > 0 && cells[0] == "t" {
			headers = cells
			i += 2 // skip the units row under the headers
			break
		}
		i++
	}
	if headers == nil {
		return nil
	}

	var samples []Sample
	for ; i < len(grid); i++ {
		cells := grid[i]
		if len(cells) == 0 || !measurementTimePattern.MatchString(cells[0]) {
			break
		}
		s := Sample{
			T:              cells[0],
			ElapsedSeconds: timeToSeconds(cells[0]),
			Values:         make(map[string]Value, len(headers)),
		}
		for j, h := range headers {
			if j == 0 || h == "" || j >= len(cells) {
				continue
			}
			s.Values[h] = Coerce(cells[j])
		}
		samples = append(samples, s)
	}
	return samples
}

// timeToSeconds converts "h:mm:ss" text, optionally with a comma or dot
// fractional suffix, to elapsed seconds. Malformed clock text yields 0;
// one bad cell must not kill the whole stream.
func timeToSeconds(raw string) float64 {
	parts := strings.Split(strings.ReplaceAll(raw, ",", "."), ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds
}
