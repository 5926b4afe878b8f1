package body

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello there", "hello there"},
		{"unix newline", "a\nb", "a newlinechar b"},
		{"windows newline", "a\r\nb", "a newlinechar b"},
		{"old mac newline", "a\rb", "a newlinechar b"},
		{"blank line", "a\n\nb", "a newlinechar  newlinechar b"},
		{"doubled quote", `he said ""hi""`, "he said 'hi'"},
		{"single quote untouched", `a "quoted" word`, `a "quoted" word`},
		{"triple quote", `"""`, `'"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalise(tt.in))
		})
	}
}

func TestNormalise_NoLineBreaksRemain(t *testing.T) {
	out := Normalise("one\r\ntwo\nthree\rfour\n")
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, "\r")
	assert.Equal(t, 4, strings.Count(out, NewlineToken))
}

func TestNormalise_Idempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"multi\nline\r\nbody\r",
		`quotes "" and """" and """`,
		"mixed\n\"\"\r\n\"\"\"",
		"",
	}

	for _, in := range inputs {
		once := Normalise(in)
		assert.Equal(t, once, Normalise(once), "input %q", in)
	}
}

func TestNormaliser_Method(t *testing.T) {
	n := New()
	assert.Equal(t, Normalise("a\nb"), n.Normalise("a\nb"))
}
