package kind

import (
	"format-generator/internal/typedmap"
)

// Formats maps a classification key to the format fragment used for it.
type Formats = typedmap.Map[Key, string]

// Specifiers maps a format verb to the key an argument must have.
type Specifiers = typedmap.Map[rune, Key]

// DefaultFormats returns the printf-style fragment table.
func DefaultFormats() *Formats {
	return typedmap.MustNew(
		typedmap.P(Int, "%d"),
		typedmap.P(Float64, "%f"),
		typedmap.P(String, "%s"),
	)
}

// DefaultSpecifiers returns the inverse table used to check format strings.
func DefaultSpecifiers() *Specifiers {
	return typedmap.MustNew(
		typedmap.P('d', Int),
		typedmap.P('f', Float64),
		typedmap.P('s', String),
	)
}
