package repository

import (
	"encoding/base64"
	"testing"

	"studiodesk/pkg/model"
	"studiodesk/pkg/sealer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSealer(t *testing.T, key string) *sealer.Sealer {
	t.Helper()
	s, err := sealer.New(base64.StdEncoding.EncodeToString([]byte(key)))
	require.NoError(t, err)
	return s
}

func TestSealToken_RoundTrip(t *testing.T) {
	r := &mongoSessionRepository{sealer: testSealer(t, "0123456789abcdef0123456789abcdef")}
	state := &model.SessionState{ID: "s1", Token: "bearer"}

	doc, err := r.sealToken(state)
	require.NoError(t, err)
	assert.NotEqual(t, "bearer", doc.Token)
	assert.Equal(t, "bearer", state.Token, "caller's state keeps the plain token")
	assert.Equal(t, "s1", doc.ID)

	require.NoError(t, r.openToken(doc))
	assert.Equal(t, "bearer", doc.Token)
}

func TestSealToken_WithoutSealer(t *testing.T) {
	r := &mongoSessionRepository{}
	state := &model.SessionState{ID: "s1", Token: "bearer"}

	doc, err := r.sealToken(state)
	require.NoError(t, err)
	assert.Equal(t, "bearer", doc.Token)

	require.NoError(t, r.openToken(doc))
	assert.Equal(t, "bearer", doc.Token)
}

func TestOpenToken_RotatedKey(t *testing.T) {
	old := &mongoSessionRepository{sealer: testSealer(t, "0123456789abcdef0123456789abcdef")}
	doc, err := old.sealToken(&model.SessionState{ID: "s1", Token: "bearer"})
	require.NoError(t, err)

	rotated := &mongoSessionRepository{sealer: testSealer(t, "fedcba9876543210fedcba9876543210")}
	assert.Error(t, rotated.openToken(doc))
}

func TestSealToken_EmptyTokenUntouched(t *testing.T) {
	r := &mongoSessionRepository{sealer: testSealer(t, "0123456789abcdef0123456789abcdef")}

	doc, err := r.sealToken(&model.SessionState{ID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, doc.Token)
}
