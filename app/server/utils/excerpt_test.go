package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"plain", "hello world", 250, "hello world"},
		{"markup", "<p>Hello <b>bold</b>\n\n world</p><img src=x />", 250, "Hello bold world"},
		{"script", "<p>a</p><script>alert(1)</script><style>p{}</style>b", 250, "a b"},
		{"entities", "<p>fish &amp; chips</p>", 250, "fish & chips"},
		{"escaped tag", "<p>&lt;img src=x onerror=alert(1)&gt;</p>", 250, "img src=x onerror=alert(1)"},
		{"truncated", "abcdef", 3, "abc"},
		{"multibyte", "héllo wörld", 4, "héll"},
		{"trailing space", "abc def", 4, "abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Excerpt(tc.in, tc.n); got != tc.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestExcerptLongBody(t *testing.T) {
	body := "<div>" + strings.Repeat("<p>lorem ipsum dolor</p>\n", 100) + "</div>"
	got := Excerpt(body, 250)

	if utf8.RuneCountInString(got) > 250 {
		t.Errorf("excerpt too long: %d", utf8.RuneCountInString(got))
	}
	if strings.ContainsAny(got, "<>\n") {
		t.Errorf("excerpt still has markup or newlines: %q", got)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Errorf("ParseID(42) = %d, %v", id, err)
	}
	for _, s := range []string{"", "-1", "abc", "1.5"} {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) accepted", s)
		}
	}
}
