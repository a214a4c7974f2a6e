package templating

import "strings"

// SanitizeSort strips one leading delimiter pair from a sort string so that catalogs
// do not sort by punctuation. Only the first matching rule applies:
//
//	【…】  full-width brackets; a closer that does not end the string becomes a space
//	[…]   square brackets
//	(…)   parentheses
//	"…"   double quotes
//	#     a lone leading hash
func SanitizeSort(s string) string {
	switch {
	case strings.HasPrefix(s, "【"):
		s = strings.TrimPrefix(s, "【")
		if strings.HasSuffix(s, "】") {
			return strings.Replace(s, "】", "", 1)
		}
		return strings.Replace(s, "】", " ", 1)
	case strings.HasPrefix(s, "["):
		return strings.Replace(s[1:], "]", "", 1)
	case strings.HasPrefix(s, "("):
		return strings.Replace(s[1:], ")", "", 1)
	case strings.HasPrefix(s, `"`):
		return strings.Replace(s[1:], `"`, "", 1)
	case strings.HasPrefix(s, "#"):
		return s[1:]
	}
	return s
}
