package wikipedia

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var apostropheRemover = strings.NewReplacer("'", "", "’", "")

// NormalizeFieldName converts an infobox label to a single camelCase token:
// "Elevation above sea level" becomes "elevationAboveSeaLevel".
//
// Words are split on every rune that is neither a letter nor a digit, so
// punctuation and bullets disappear ("• Total" -> "total", "Area code(s)"
// -> "areaCodeS"). Apostrophes are dropped without splitting a word.
// Casing in the source is ignored: "GDP (PPP)" and "Gdp ppp" both give
// "gdpPpp".
func NormalizeFieldName(label string) string {
	words := strings.FieldsFunc(apostropheRemover.Replace(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for i, word := range words {
		word = strings.ToLower(word)
		if i == 0 {
			sb.WriteString(word)
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(first))
		sb.WriteString(word[size:])
	}
	return sb.String()
}
