package catalog

import (
	"fmt"
	"strings"
)

// slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, e.g. "Trail Light 4K!" -> "trail-light-4k".
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// uniqueSlug derives the slug for name and suffixes a counter until it no
// longer collides with a slug already taken.
func uniqueSlug(name string, taken []string) string {
	slug := slugify(name)

	used := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}
	if _, ok := used[slug]; !ok {
		return slug
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", slug, counter)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
