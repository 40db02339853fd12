package comb

import (
	"strings"
)

// ResolveTemplate substitutes every @name reference in src with the
// environment's value for name, formatted as a token. The sequence @@
// emits a literal @, and a lone @ with no identifier following it is kept
// verbatim.
//
// Resolution against a closed environment is idempotent: the output
// contains no further references.
func ResolveTemplate(src string, env Env) (string, error) {
	var sb strings.Builder

	for i := 0; i < len(src); {
		if src[i] != '@' {
			sb.WriteByte(src[i])
			i++

			continue
		}

		// Escaped @
		if i+1 < len(src) && src[i+1] == '@' {
			sb.WriteByte('@')
			i += 2

			continue
		}

		name := scanIdent(src[i+1:])
		if name == "" {
			sb.WriteByte('@')
			i++

			continue
		}

		value, err := env.Resolve(name)
		if err != nil {
			return "", err
		}

		sb.WriteString(formatToken(value))
		i += 1 + len(name)
	}

	return sb.String(), nil
}

// scanIdent returns the leading identifier of s: letters, digits, and
// underscores.
func scanIdent(s string) string {
	end := 0

	for end < len(s) {
		c := s[end]
		if c == '_' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') {
			end++

			continue
		}

		break
	}

	return s[:end]
}
