package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/wirebox/ident"
)

type session struct{ token string }

func TestPutAndGet(t *testing.T) {
	s := New()
	id := ident.Of[*session]()
	v := &session{token: "abc"}

	require.NoError(t, s.Put(id, v))

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.True(t, s.Has(id))
	assert.Equal(t, 1, s.Len())
}

func TestPutNeverOverwrites(t *testing.T) {
	s := New()
	id := ident.Named("session")
	first := &session{token: "first"}
	require.NoError(t, s.Put(id, first))

	err := s.Put(id, &session{token: "second"})
	require.ErrorIs(t, err, ErrAlreadyStored)

	got, _ := s.Get(id)
	assert.Same(t, first, got)
}

func TestReplace(t *testing.T) {
	s := New()
	id := ident.Named("session")

	require.ErrorIs(t, s.Replace(id, &session{}), ErrNotStored)

	require.NoError(t, s.Put(id, &session{token: "raw"}))
	replaced := &session{token: "initialized"}
	require.NoError(t, s.Replace(id, replaced))

	got, _ := s.Get(id)
	assert.Same(t, replaced, got)
	assert.Equal(t, 1, s.Len())
}

func TestIDsFollowBuildOrder(t *testing.T) {
	s := New()
	names := []string{"keychain", "auth", "api"}
	for _, n := range names {
		require.NoError(t, s.Put(ident.Named(n), n))
	}

	got := s.IDs()
	require.Len(t, got, 3)
	for i, n := range names {
		assert.Equal(t, ident.Named(n), got[i])
	}
}

func TestGetMissing(t *testing.T) {
	s := New()

	_, ok := s.Get(ident.Named("ghost"))
	assert.False(t, ok)
	assert.False(t, s.Has(ident.Named("ghost")))
}
