package principal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/principal"
)

func TestStringParseRoundTrip(t *testing.T) {
	p := principal.Principal([]byte("minter-canister-id"))

	text := p.String()
	got, err := principal.Parse(text)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

func TestParseRejectsCorruptedChecksum(t *testing.T) {
	p := principal.Principal([]byte("minter-canister-id"))
	text := p.String()

	flip := byte('z')
	if text[0] == flip {
		flip = 'a'
	}
	corrupted := string(flip) + text[1:]
	_, err := principal.Parse(corrupted)
	assert.Error(t, err)
}

func TestParseRejectsTooShortText(t *testing.T) {
	_, err := principal.Parse("aa")
	assert.Error(t, err)
}

func TestEqualIsFalseForDifferentBytes(t *testing.T) {
	a := principal.Principal([]byte("minter-a"))
	b := principal.Principal([]byte("minter-b"))
	assert.False(t, a.Equal(b))
}
