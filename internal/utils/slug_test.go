package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Café à Montréal", "cafe-a-montreal"},
		{"Hello, World!", "hello-world"},
		{"  Leading & trailing  ", "leading-trailing"},
		{"Über straße", "uber-strasse"},
		{"Œuvres complètes", "oeuvres-completes"},
		{"already-a-slug", "already-a-slug"},
		{"MiXeD CaSe 42", "mixed-case-42"},
		{"___", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.title), "title: %q", tc.title)
	}
}

func TestSlugifyNoUppercaseOrPunctuation(t *testing.T) {
	slug := Slugify("L'été: c'est déjà fini?!")
	for _, r := range slug {
		ok := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-'
		require.True(t, ok, "unexpected rune %q in slug %q", r, slug)
	}
}
