package env

import "strings"

// DecodeKey converts an environment variable name (with the prefix already
// stripped) into a dotted config key. A double underscore is an escaped
// literal underscore; a single underscore is a path separator. Case is
// preserved.
//
// The scan is greedy left to right: each "__" is consumed as one literal
// underscore before single underscores are considered, so "a___b" decodes
// to "a_.b" and a trailing lone underscore becomes a trailing dot.
func DecodeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		if name[i] == '_' {
			if i+1 < len(name) && name[i+1] == '_' {
				b.WriteByte('_')
				i += 2
			} else {
				b.WriteByte('.')
				i++
			}
		} else {
			b.WriteByte(name[i])
			i++
		}
	}
	return b.String()
}

// EncodeKey is the inverse of DecodeKey: literal underscores are escaped to
// "__" and dots become single underscores.
func EncodeKey(key string) string {
	escaped := strings.ReplaceAll(key, "_", "__")
	return strings.ReplaceAll(escaped, ".", "_")
}
