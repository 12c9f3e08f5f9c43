package table

import "strings"

// missingTokens are the textual markers treated as an absent cell
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"NAN":  {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"#N/A": {},
	"<NA>": {},
	"null": {},
	"NULL": {},
	"Null": {},
	"None": {},
	"nil":  {},
	"NIL":  {},
}

// IsMissingToken reports whether s, once trimmed, marks an absent value
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// NormalizeCell trims raw cell text and maps every missing marker to a null
// cell. It is the single absence check applied at ingestion.
func NormalizeCell(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if IsMissingToken(trimmed) {
		return Null()
	}
	return String(trimmed)
}

// Normalize re-applies NormalizeCell to every present cell of v
func Normalize(v Value) Value {
	if v.IsNull() {
		return v
	}
	return NormalizeCell(v.Text)
}
