package sealer

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func TestSealer_RoundTrip(t *testing.T) {
	s, err := New(testKey)
	require.NoError(t, err)

	sealed, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "bearer-token")

	again, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce should differ per seal")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", opened)
}

func TestNew_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "not base64", key: "%%%"},
		{name: "wrong length", key: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "empty", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestSealer_OpenRejectsTampering(t *testing.T) {
	s, err := New(testKey)
	require.NoError(t, err)

	sealed, err := s.Seal("bearer-token")
	require.NoError(t, err)

	other, err := New(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32))))
	require.NoError(t, err)

	tests := []struct {
		name  string
		s     *Sealer
		token string
	}{
		{name: "wrong key", s: other, token: sealed},
		{name: "not base64", s: s, token: "***"},
		{name: "too short", s: s, token: "abc"},
		{name: "flipped byte", s: s, token: flip(sealed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Open(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func flip(token string) string {
	data, _ := base64.RawURLEncoding.DecodeString(token)
	data[len(data)-1] ^= 0xff
	return base64.RawURLEncoding.EncodeToString(data)
}
