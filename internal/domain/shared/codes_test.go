package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeAlphabetExcludesAmbiguousCharacters(t *testing.T) {
	for _, forbidden := range []string{"0", "O", "1", "I"} {
		assert.NotContains(t, CodeAlphabet, forbidden)
	}
	assert.Len(t, CodeAlphabet, 32)
}

func TestRandomCode(t *testing.T) {
	for _, n := range []int{1, 4, 7, 16} {
		code := RandomCode(n)
		assert.Len(t, code, n)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(CodeAlphabet, r), "unexpected character %q", r)
		}
	}
}

func TestRandomCodeZeroLength(t *testing.T) {
	assert.Empty(t, RandomCode(0))
}

func TestServiceTypeValid(t *testing.T) {
	valid := []ServiceType{
		ServiceTypeLodging,
		ServiceTypeGastronomy,
		ServiceTypeTransport,
		ServiceTypeTour,
		ServiceTypePackage,
	}
	for _, st := range valid {
		assert.True(t, st.Valid(), "expected %q to be valid", st)
	}

	assert.False(t, ServiceType("").Valid())
	assert.False(t, ServiceType("flight").Valid())
	assert.False(t, ServiceType("LODGING").Valid())
}
