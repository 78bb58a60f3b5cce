package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// NormalizeDate derives the calendar date for a row. The operator can
// force one date for the whole batch; otherwise a numeric cell is an
// Excel date serial, anything else is taken as written.
func NormalizeDate(raw, override string) string {
	if override != "" {
		return override
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

// NormalizeTime coerces a cell into zero-padded 24-hour "HH:MM". Numeric
// cells are Excel serials where the fractional part is the fraction of a
// day (0.3125 = 07:30); the whole part, if any, is the date and is
// discarded. Free text gets its hour padded and is cut at five
// characters. The zero padding is load-bearing: the late threshold is
// compared lexicographically.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		frac := serial - float64(int64(serial))
		secs := int(frac * 86400)
		return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
	}

	if len(raw) >= 2 && raw[1] == ':' {
		raw = "0" + raw
	}
	if len(raw) > 5 {
		raw = raw[:5]
	}
	return raw
}
