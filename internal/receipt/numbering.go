// Package receipt derives donation receipt serial numbers.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Munazil1/centswise/internal/domain"
)

const prefix = "RCP"

// Sequence returns the numeric sequence of a serial number: the leading digits
// of its third dash-delimited segment. Anything unparseable yields 0.
func Sequence(serial string) int {
	parts := strings.Split(serial, "-")
	if len(parts) < 3 {
		return 0
	}
	seg := parts[2]
	end := 0
	for end < len(seg) && seg[end] >= '0' && seg[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(seg[:end])
	if err != nil {
		return 0
	}
	return n
}

// Format renders a serial number for the given year and sequence.
func Format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Next returns the serial number following the highest sequence found among
// credits. The year is taken from now; sequences are not reset per year.
func Next(credits []domain.Credit, now time.Time) string {
	highest := 0
	for _, c := range credits {
		if seq := Sequence(c.SerialNumber); seq > highest {
			highest = seq
		}
	}
	return Format(now.Year(), highest+1)
}

// Fallback builds a serial for a remote credit that arrived without one.
func Fallback(id string, now time.Time) string {
	if n, err := strconv.Atoi(id); err == nil {
		return Format(now.Year(), n)
	}
	if len(id) < 4 {
		id = strings.Repeat("0", 4-len(id)) + id
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.Year(), id)
}
