// Package extract pulls single fields out of JSON text with regular expressions.
// It does not parse JSON; it is meant for quick peeks such as reading
// "total_pages" from a page body.
package extract

import "regexp"

// Pattern builds the expression used to find key.
type Pattern func(key string) *regexp.Regexp

var (
	IntPattern Pattern = func(key string) *regexp.Regexp {
		return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `":(\d+)`)
	}
	StringPattern Pattern = func(key string) *regexp.Regexp {
		return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `":"([^"]+)"`)
	}
	// ArrayPattern captures everything after the key up to the end of the line.
	ArrayPattern Pattern = func(key string) *regexp.Regexp {
		return regexp.MustCompile(`(?:"` + regexp.QuoteMeta(key) + `":)(.*)`)
	}
)

// Field returns the first capture group of the first match of pattern(key).
func Field(pattern Pattern, key, text string) (string, bool) {
	m := pattern(key).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func Int(key, text string) (string, bool) {
	return Field(IntPattern, key, text)
}

// LastInt is Int but takes the last occurrence of key.
func LastInt(key, text string) (string, bool) {
	all := IntPattern(key).FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return "", false
	}
	return all[len(all)-1][1], true
}

func String(key, text string) (string, bool) {
	return Field(StringPattern, key, text)
}

func Array(key, text string) (string, bool) {
	return Field(ArrayPattern, key, text)
}
