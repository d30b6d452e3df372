package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Example.com/Events/", "https://example.com/events"},
		{"  http://a.b/c  ", "http://a.b/c"},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in))
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Festival Privé — Corporate 2026!")
	assert.True(t, got["festival"])
	assert.True(t, got["privé"])
	assert.True(t, got["corporate"])
	assert.True(t, got["2026"])
	assert.Len(t, got, 4)
}

func TestTokenSetSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "Jazz Festival Lyon", "Jazz Festival Lyon", 1.0, 1.0},
		{"word order ignored", "Lyon Jazz Festival", "Jazz Festival Lyon", 1.0, 1.0},
		{"case ignored", "JAZZ FESTIVAL", "jazz festival", 1.0, 1.0},
		{"partial overlap", "Jazz Festival Lyon 2026", "Jazz Festival Paris 2026", 0.5, 0.7},
		{"disjoint", "rock concert", "jazz brunch", 0, 0},
		{"empty left", "", "jazz festival", 0, 0},
		{"empty both", "", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSetSimilarity(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestContainsAny(t *testing.T) {
	term, ok := ContainsAny("Appel d'Offres — programmation festival", []string{"appel d'offres", "tender"})
	assert.True(t, ok)
	assert.Equal(t, "appel d'offres", term)

	_, ok = ContainsAny("private corporate gala", []string{"tender"})
	assert.False(t, ok)
}
