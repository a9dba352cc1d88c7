package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(11) 98765-4321", "11987654321"},
		{"+55 11 98765 4321", "5511987654321"},
		{"11987654321", "11987654321"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input=%q", tt.in)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "maria silva", NormalizeName("  Maria Silva "))
	assert.Equal(t, "joão", NormalizeName("JOÃO"))
}

func TestLookupKeyFor(t *testing.T) {
	// The same customer typed differently must resolve to the same key.
	a := LookupKeyFor("(11) 98765-4321", "Maria Silva")
	b := LookupKeyFor("11987654321", "  maria silva")
	assert.Equal(t, a, b)
	assert.Equal(t, "11987654321:maria silva", a)

	// Different name, same phone is a different key.
	c := LookupKeyFor("11987654321", "José Silva")
	assert.NotEqual(t, a, c)
}
