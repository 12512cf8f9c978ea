// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters without a canonical decomposition, plus symbols that are spelled out.
var symbols = strings.NewReplacer(
	"đ", "d", "Đ", "D",
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ł", "l", "Ł", "L",
	"ß", "ss",
	"&", "and",
	"%", "percent",
	"$", "dollar",
	"<", "less",
	">", "greater",
	"|", "or",
)

// Make lowercases name and strips diacritics. Whitespace and '-' separate
// words, which are joined with a single '-'; every other rune that is not an
// ASCII letter or digit is dropped. It returns "" when nothing survives.
func Make(name string) string {
	s := symbols.Replace(name)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			sep = false
		case r == '-' || unicode.IsSpace(r):
			sep = true
		}
	}
	return b.String()
}

// Unique probes base, base-1, base-2, ... until exists reports false.
// The probe is advisory; the store's unique index has the final word.
func Unique(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
