package cache

import "strings"

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeyAll is the key under which a namespace caches its full listing.
const KeyAll = "all"

// Key builds a cache key from a field-discriminator prefix plus the queried
// values, e.g. Key("email", "a@b.c") -> "email::a@b.c". Keys are only built
// from identifiers, exact-match fields, and closed enumerations; unbounded
// parameter spaces (substrings, price ranges) are deliberately never cached,
// so no general-purpose serialization is needed here.
func Key(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}
