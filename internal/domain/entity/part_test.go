package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sathler/bomlink/internal/domain/entity"
)

func TestNormalizePartNumber(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ABC-123", "ABC123"},
		{"abc123", "ABC123"},
		{"  p/n 10.22-a ", "PN1022A"},
		{"---", ""},
		{"", ""},
		{"ñ-12", "Ñ12"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.NormalizePartNumber(tc.in), "entrada %q", tc.in)
	}
}
