package logger

import (
	"bytes"
	"html"
	"strings"
	"unicode"

	"github.com/rainycape/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unavailableMapping = map[rune]rune{
	'Ɓ': 'B',
	'đ': 'd',
	'Đ': 'D',
	'ħ': 'h',
	'Ħ': 'H',
	'ł': 'l',
	'Ł': 'L',
	'Ø': 'O',
	'ø': 'o',
	'ŧ': 't',
	'Ŧ': 'T',
	'ƒ': 'f',
	'Ƒ': 'F',
}

func mapDecomposeUnavailable(r rune) rune {
	if v, ok := unavailableMapping[r]; ok {
		return v
	}
	return r
}

var subRune = map[rune]string{
	'&':  "and",
	'@':  "at",
	'"':  "",
	'\'': "",
	'’':  "",
	'_':  "",
	'‒':  "-", // figure dash
	'–':  "-", // en dash
	'—':  "-", // em dash
	'―':  "-", // horizontal bar
	'ä':  "ae",
	'Ä':  "Ae",
	'ö':  "oe",
	'Ö':  "Oe",
	'ü':  "ue",
	'Ü':  "Ue",
	'ß':  "ss",
}

// substituteRune substitutes string chars with the subRune map. One pass.
func substituteRune(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, c := range s {
		if d, ok := subRune[c]; ok {
			buf.WriteString(d)
		} else {
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

func isWanted(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}

func replaceUnwantedChars(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, c := range s {
		if isWanted(c) {
			buf.WriteRune(c)
		} else {
			buf.WriteRune('-')
		}
	}
	return buf.String()
}

// StringReplaceDiacritics strips combining marks after mapping letters that
// have no decomposition (ł, ø, đ ...).
func StringReplaceDiacritics(instr string) string {
	t := transform.Chain(runes.Map(mapDecomposeUnavailable), norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, instr)
	if err != nil {
		return instr
	}
	return out
}

// StringToSlug turns a display title into a lower case ascii slug, e.g.
// "Amélie & Nino (2001)" -> "amelie-and-nino-2001".
// No chinese or cyrillic transliteration beyond what unidecode offers.
func StringToSlug(instr string) string {
	if strings.ContainsAny(instr, "&%") {
		instr = html.UnescapeString(instr)
	}
	instr = substituteRune(strings.TrimSpace(instr))
	instr = StringReplaceDiacritics(instr)
	instr = strings.ToLower(unidecode.Unidecode(instr))
	instr = replaceUnwantedChars(instr)
	for strings.Contains(instr, "--") {
		instr = strings.ReplaceAll(instr, "--", "-")
	}
	return strings.Trim(instr, "-")
}
