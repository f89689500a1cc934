package script

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FunctionNameToken is substituted in every file-backed script.
const FunctionNameToken = "__FUNCTION_NAME__"

// Placeholders maps a literal token found in a script template to its
// replacement value.
type Placeholders map[string]string

// Merge returns a new map holding p overridden by every entry of others, in
// order.
func (p Placeholders) Merge(others ...Placeholders) Placeholders {
	size := len(p)
	for _, o := range others {
		size += len(o)
	}

	merged := make(Placeholders, size)
	for k, v := range p {
		merged[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// Clone returns a copy of p. A nil map clones to an empty one.
func (p Placeholders) Clone() Placeholders {
	return Placeholders{}.Merge(p)
}

// Substitute replaces every token of placeholders found in content in a
// single left-to-right pass. At each position the longest matching token
// wins and replaced text is never scanned again. Empty tokens are ignored.
func Substitute(content string, placeholders Placeholders) string {
	if content == "" || len(placeholders) == 0 {
		return content
	}

	tokens := make([]string, 0, len(placeholders))
	for token := range placeholders {
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return content
	}

	// strings.Replacer picks the first matching pair at a position, so
	// longer tokens go first.
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, len(tokens)*2)
	for _, token := range tokens {
		pairs = append(pairs, token, placeholders[token])
	}

	return strings.NewReplacer(pairs...).Replace(content)
}

var upperCaser = cases.Upper(language.Und)

// FunctionName converts a file name such as "init-script" or "theme_switch_2"
// into a camelCase JavaScript identifier ("initScript", "themeSwitch2").
// Words split on '-', '_' and ' '. Only the first rune of each word is
// upper-cased, so digits stay part of their word ("x-2nd-part" becomes
// "x2ndPart").
func FunctionName(fileName string) string {
	words := strings.FieldsFunc(fileName, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for _, word := range words {
		_, size := utf8.DecodeRuneInString(word)
		b.WriteString(upperCaser.String(word[:size]))
		b.WriteString(word[size:])
	}

	return lowerFirst(b.String())
}

// Kebab converts a script name into its kebab-case form: "InitScript" and
// "init script" both become "init-script". Already lower-case names are
// returned untouched.
func Kebab(name string) string {
	if isAllLower(name) {
		return name
	}

	var words []string
	for _, field := range strings.Fields(name) {
		words = append(words, upperFirst(field))
	}
	joined := strings.Join(words, "")

	var b strings.Builder
	b.Grow(len(joined) + 4)
	for i, r := range joined {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}

func isAllLower(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
