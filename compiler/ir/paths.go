package ir

import "strings"

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// ColonToBrace converts a canonical ":param" path to the "{param}" convention
// used by frameworks such as Actix and FastAPI. A ":" not followed by any
// identifier character is emitted as a literal colon, not a parameter. The
// scan is single-pass and total; malformed input degrades to literal
// passthrough.
func ColonToBrace(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 4)
	for i := 0; i < len(path); {
		if path[i] != ':' {
			b.WriteByte(path[i])
			i++
			continue
		}
		j := i + 1
		for j < len(path) && isIdentChar(path[j]) {
			j++
		}
		if j == i+1 {
			// Bare colon, no identifier follows.
			b.WriteByte(':')
			i++
			continue
		}
		b.WriteByte('{')
		b.WriteString(path[i+1 : j])
		b.WriteByte('}')
		i = j
	}
	return b.String()
}

// BraceToColon converts a "{param}" path back to the canonical ":param"
// convention. An unmatched "{" is passed through literally.
func BraceToColon(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); {
		if path[i] != '{' {
			b.WriteByte(path[i])
			i++
			continue
		}
		j := strings.IndexByte(path[i:], '}')
		if j < 0 {
			b.WriteByte('{')
			i++
			continue
		}
		b.WriteByte(':')
		b.WriteString(path[i+1 : i+j])
		i += j + 1
	}
	return b.String()
}

// BracketToColon normalizes a file-based-routing-style path such as
// "/users/[id]" to the canonical ":param" convention. An empty bracket pair
// is passed through literally, since a bare ":" is not a valid parameter in
// any supported framework. An unmatched "[" is passed through literally.
func BracketToColon(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); {
		if path[i] != '[' {
			b.WriteByte(path[i])
			i++
			continue
		}
		j := strings.IndexByte(path[i:], ']')
		if j < 0 {
			b.WriteByte('[')
			i++
			continue
		}
		if j == 1 {
			b.WriteString("[]")
			i += 2
			continue
		}
		b.WriteByte(':')
		b.WriteString(path[i+1 : i+j])
		i += j + 1
	}
	return b.String()
}

// NormalizePath rewrites any supported parameter convention to the canonical
// ":param" form used throughout the IR.
func NormalizePath(path string) string {
	return BraceToColon(BracketToColon(path))
}
