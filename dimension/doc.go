// Package dimension parses architectural dimension annotations into
// decimal-feet values.
//
// Drawings express measurements in several grammars: feet-and-inches
// (10'-6"), feet-inches with a fractional inch (10'-6 1/2"), decimal feet
// (10.5'), bare inches (6"), and metric (68.3m, 1000mm, 100cm) on site
// plans. [Parser.Parse] tries the grammars in priority order and returns a
// [Dimension], or a [ParseError] when no grammar matches. A ParseError is
// never fatal; the caller treats the text run as a plain label.
//
// Text is NFKC-normalized before matching so typographic primes (′ ″) and
// vulgar fraction glyphs (½ ¼ ¾) parse the same as their ASCII forms.
package dimension
