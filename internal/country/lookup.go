// Package country maps ISO 3166-1 alpha-3 residence codes to display names
// and alpha-2 abbreviations.
package country

import (
	"strings"

	"github.com/biter777/countries"
)

// Lookup returns the display name and alpha-2 abbreviation of an alpha-3
// code. Unknown codes fall back to the code itself and its first two
// letters.
func Lookup(iso3 string) (name, abbrev string) {
	code := strings.ToUpper(strings.TrimSpace(iso3))
	if len(code) == 3 {
		if c := countries.ByName(code); c != countries.Unknown && c.Alpha3() == code {
			return c.String(), c.Alpha2()
		}
	}
	return iso3, fallbackAbbrev(iso3)
}

func fallbackAbbrev(code string) string {
	r := []rune(code)
	if len(r) > 2 {
		return string(r[:2])
	}
	return code
}
