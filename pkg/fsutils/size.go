package fsutils

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type sizeUnit struct {
	name      string
	bytes     float64
	fractions int
}

// Decimal units, the way file sizes are shown in file browsers.
var sizeUnits = []sizeUnit{
	{name: "KB", bytes: 1e3, fractions: 0},
	{name: "MB", bytes: 1e6, fractions: 1},
	{name: "GB", bytes: 1e9, fractions: 2},
	{name: "TB", bytes: 1e12, fractions: 2},
}

var sizePrinter = message.NewPrinter(language.English)

// SizeForDisplay splits a byte count into a number and a unit, e.g. ("12.3", "MB").
func SizeForDisplay(size int64) (value, unit string) {
	if size < 0 {
		size = 0
	}
	if size < 1000 {
		if size == 1 {
			return "1", "byte"
		}
		return strconv.FormatInt(size, 10), "bytes"
	}
	u := sizeUnits[0]
	for _, candidate := range sizeUnits[1:] {
		if float64(size) < candidate.bytes {
			break
		}
		u = candidate
	}
	v := float64(size) / u.bytes
	value = sizePrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(u.fractions)))
	return value, u.name
}
