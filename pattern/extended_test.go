package pattern

import "testing"

func TestStripWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "abc", want: "abc"},
		{name: "spaces and tabs", in: "a \tb\n c", want: "abc"},
		{name: "comment to end of line", in: "a # first\nb", want: "ab"},
		{name: "comment at end", in: "a # no newline", want: "a"},
		{name: "escaped space", in: `a\ b`, want: `a\ b`},
		{name: "escaped hash", in: `a\#b`, want: `a\#b`},
		{name: "class keeps space", in: "[ a]", want: "[ a]"},
		{name: "class keeps hash", in: "[#] x", want: "[#]x"},
		{name: "leading bracket literal", in: "[]a] b", want: "[]a]b"},
		{name: "negated leading bracket", in: "[^] ] b", want: "[^] ]b"},
		{name: "posix class", in: "[[:alpha:] ] +", want: "[[:alpha:] ]+"},
		{name: "quoted literal", in: `\Qa b\E c`, want: `\Qa b\Ec`},
		{name: "unterminated quote", in: `x \Qa b`, want: `x\Qa b`},
		{name: "repetition", in: "a{2, 3}", want: "a{2,3}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripWhitespace(tc.in); got != tc.want {
				t.Errorf("stripWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
