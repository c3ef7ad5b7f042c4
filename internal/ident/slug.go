// ABOUTME: Deterministic slugification of entity names into stable ids
// ABOUTME: The slug is the sole identity key, so extraction order never affects identity
package ident

import "strings"

// Slug normalizes a free-text name into an id-safe slug: lower-cased, every
// maximal run of non-alphanumeric characters collapsed to a single "_",
// leading and trailing separators stripped.
//
// Slug is pure and total; identical normalized names always yield the same
// id, which is what makes world-state merges idempotent.
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}

	return b.String()
}
