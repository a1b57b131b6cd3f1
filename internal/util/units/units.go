// Package units formats byte counts and elapsed times for table cells.
package units

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

var byteUnits = []struct {
	size   uint64
	suffix string
}{
	{humanize.EiByte, "E"},
	{humanize.PiByte, "P"},
	{humanize.TiByte, "T"},
	{humanize.GiByte, "G"},
	{humanize.MiByte, "M"},
	{humanize.KiByte, "K"},
}

// Bytify renders n in the largest binary unit not exceeding it, with three
// decimals and a one-letter suffix: 1536 -> "1.500K", 512 -> "512.000".
func Bytify(n uint64) string {
	for _, u := range byteUnits {
		if n >= u.size {
			return fmt.Sprintf("%.3f%s", float64(n)/float64(u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%.3f", float64(n))
}

const (
	secPerDay  = 60 * 60 * 24
	secPerYear = 365 * secPerDay
)

// ParseTime renders a duration in seconds as years or days with one
// decimal once it reaches a day, and as HH:MM:SS below that.
func ParseTime(sec uint64) string {
	year := float64(sec) / secPerYear
	day := float64(sec) / secPerDay
	switch {
	case year >= 1:
		return fmt.Sprintf("%.1fyears", year)
	case day >= 1:
		return fmt.Sprintf("%.1fdays", day)
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600%24, sec/60%60, sec%60)
}
