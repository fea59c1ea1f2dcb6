package skills

import (
	"errors"
	"regexp"
	"strings"
)

// AliasShape selects the boundary rules used when an alias is searched for in text.
type AliasShape int

const (
	// ShapeGeneric aliases must be surrounded by non-alphanumeric characters or the text edges.
	// Markdown emphasis such as ** or _ counts as a boundary.
	ShapeGeneric AliasShape = iota
	// ShapeSymbolToken aliases contain '+' or '#' (c++, c#). The preceding character must not be
	// a letter and the following one must not be a letter or digit.
	ShapeSymbolToken
	// ShapeDotPrefixed aliases start with '.' (.net). Nothing is required before the match and a
	// regular word boundary is required after it.
	ShapeDotPrefixed
)

func (s AliasShape) String() string {
	switch s {
	case ShapeSymbolToken:
		return "symbol"
	case ShapeDotPrefixed:
		return "dot"
	default:
		return "generic"
	}
}

var errEmptyAlias = errors.New("alias is empty")

// ShapeOf classifies an alias.
func ShapeOf(alias string) AliasShape {
	alias = strings.TrimSpace(alias)
	switch {
	case strings.HasPrefix(alias, "."):
		return ShapeDotPrefixed
	case strings.ContainsAny(alias, "+#"):
		return ShapeSymbolToken
	default:
		return ShapeGeneric
	}
}

const (
	notAlnumBefore  = `(?:^|[^\p{L}\p{N}])`
	notLetterBefore = `(?:^|[^\p{L}])`
	notAlnumAfter   = `(?:[^\p{L}\p{N}]|$)`
	notWordAfter    = `(?:[^\p{L}\p{N}_]|$)`
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildPattern compiles the case-insensitive matcher for alias according to its shape.
func BuildPattern(alias string) (*regexp.Regexp, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, errEmptyAlias
	}

	// Multi-word aliases tolerate any run of whitespace between words.
	words := whitespaceRun.Split(alias, -1)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	body := strings.Join(words, `\s+`)

	var expr string
	switch ShapeOf(alias) {
	case ShapeSymbolToken:
		expr = notLetterBefore + body + notAlnumAfter
	case ShapeDotPrefixed:
		expr = body + notWordAfter
	default:
		expr = notAlnumBefore + body + notAlnumAfter
	}

	return regexp.Compile("(?i)" + expr)
}
