package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

	// NFD + strip combining marks folds accented letters to plain ASCII
	// ("Santé" -> "Sante") before the lowercase/hyphen pass.
	asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify normalizes input into a URL-safe slug, falling back when the input
// normalizes to nothing (punctuation-only titles, scripts with no ASCII
// mapping)
func Slugify(input, fallback string) string {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	return slug
}

func slugify(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	lower := strings.ToLower(strings.TrimSpace(folded))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug resolves base against taken slugs by sequential probe: base,
// base-1, base-2, ... The exists func answers whether a candidate is taken;
// callers exclude the entity's own id there during updates. The probe is
// deterministic, so two titles sharing a base get base and base-1 in creation
// order. The unique index on the slug column backstops concurrent probes that
// race to the same candidate.
func UniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
