package xlsx

import (
	"regexp"
	"strconv"
	"strings"
)

// RangeRef is a parsed cell rectangle with 1-based inclusive bounds.
type RangeRef struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

var rangePattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)(?::([A-Za-z]+)(\d+))?$`)

// ParseRange parses spreadsheet range notation ("A1:D5") or a single cell
// ("B2") into numeric bounds. Malformed input falls back to the 1x1 range
// at A1 rather than failing; callers treat an unparseable range as a no-op
// single-cell edit.
func ParseRange(ref string) RangeRef {
	m := rangePattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return RangeRef{StartCol: 1, StartRow: 1, EndCol: 1, EndRow: 1}
	}

	startCol := ColumnIndex(m[1])
	startRow, _ := strconv.Atoi(m[2])

	endCol, endRow := startCol, startRow
	if m[3] != "" {
		endCol = ColumnIndex(m[3])
		endRow, _ = strconv.Atoi(m[4])
	}

	return RangeRef{StartCol: startCol, StartRow: startRow, EndCol: endCol, EndRow: endRow}
}

// ColumnIndex converts a column letter sequence to its 1-based index using
// base-26 positional arithmetic: A=1 .. Z=26, AA=27, ZZ=702.
func ColumnIndex(letters string) int {
	idx := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	if idx == 0 {
		return 1
	}
	return idx
}
