package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestStringCase(t *testing.T) {
	s := String("hello wörld")
	assert.Equal(t, String("HELLO WÖRLD"), s.ToUpper())
	assert.Equal(t, String("hello wörld"), String("HELLO WÖRLD").ToLower())
	assert.Equal(t, String("Hello Wörld"), s.ToTitle(language.Und))
	assert.Equal(t, String("hello wörld"), s, "receiver unchanged")
}

func TestStringTrim(t *testing.T) {
	s := String("  \t padded \n")
	assert.Equal(t, String("padded"), s.Trim())
	assert.Equal(t, String("padded \n"), s.TrimStart())
	assert.Equal(t, String("  \t padded"), s.TrimEnd())
}

func TestStringReplace(t *testing.T) {
	s := String("a-b-c")
	assert.Equal(t, String("a+b+c"), s.Replace("-", "+"))
	assert.Equal(t, String("a+b-c"), s.ReplaceN("-", "+", 1))
}

func TestStringConcat(t *testing.T) {
	d, _ := NewDate(2024, 2, 3)
	got := String("v").Concat(String("="), IntNumber(1), Bool(true), Null{}, FloatNumber(2.5), d)
	assert.Equal(t, String("v=1true2.52024-02-03"), got)
}

func TestStringNFC(t *testing.T) {
	decomposed := String("e\u0301")
	assert.Equal(t, String("\u00e9"), decomposed.NFC())
	assert.Equal(t, 2, decomposed.Len())
	assert.Equal(t, 1, decomposed.NFC().Len())
}

func TestStringQueries(t *testing.T) {
	s := String("payload.json")
	assert.True(t, s.Contains("load"))
	assert.True(t, s.HasPrefix("pay"))
	assert.True(t, s.HasSuffix(".json"))
	assert.Equal(t, "payload.json", s.String())
}
