package value

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// String is the text variant. Its operations return new String values;
// the receiver is never modified.
type String string

// String returns the raw text.
func (s String) String() string { return string(s) }

// Len returns the number of runes.
func (s String) Len() int { return utf8.RuneCountInString(string(s)) }

// ToUpper returns s with all letters upper-cased (language neutral).
func (s String) ToUpper() String {
	return String(cases.Upper(language.Und).String(string(s)))
}

// ToLower returns s with all letters lower-cased (language neutral).
func (s String) ToLower() String {
	return String(cases.Lower(language.Und).String(string(s)))
}

// ToTitle returns s in title case using the rules of tag.
// Use language.Und for language-neutral rules.
func (s String) ToTitle(tag language.Tag) String {
	return String(cases.Title(tag).String(string(s)))
}

// Trim removes leading and trailing white space.
func (s String) Trim() String { return String(strings.TrimSpace(string(s))) }

// TrimStart removes leading white space.
func (s String) TrimStart() String {
	return String(strings.TrimLeftFunc(string(s), unicode.IsSpace))
}

// TrimEnd removes trailing white space.
func (s String) TrimEnd() String {
	return String(strings.TrimRightFunc(string(s), unicode.IsSpace))
}

// Replace replaces every occurrence of old with repl.
func (s String) Replace(old, repl string) String {
	return String(strings.ReplaceAll(string(s), old, repl))
}

// ReplaceN replaces the first n occurrences of old with repl.
func (s String) ReplaceN(old, repl string, n int) String {
	return String(strings.Replace(string(s), old, repl, n))
}

// Concat appends parts to s. Strings are appended raw, other scalars by
// their text form; absent values append nothing.
func (s String) Concat(parts ...Value) String {
	var b strings.Builder
	b.WriteString(string(s))
	for _, p := range parts {
		switch v := p.(type) {
		case String:
			b.WriteString(string(v))
		case Number:
			b.WriteString(v.String())
		case Bool:
			if v {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		case DateTime:
			b.WriteString(v.String())
		}
	}
	return String(b.String())
}

// NFC returns s in Unicode normalization form C.
func (s String) NFC() String { return String(norm.NFC.String(string(s))) }

// Contains reports whether sub is within s.
func (s String) Contains(sub string) bool { return strings.Contains(string(s), sub) }

// HasPrefix reports whether s begins with prefix.
func (s String) HasPrefix(prefix string) bool { return strings.HasPrefix(string(s), prefix) }

// HasSuffix reports whether s ends with suffix.
func (s String) HasSuffix(suffix string) bool { return strings.HasSuffix(string(s), suffix) }
