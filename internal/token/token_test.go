package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogersnm/dolphin/internal/credstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestResolve_PriorityOrder(t *testing.T) {
	st := credstore.NewMemoryStore(map[string]string{"admin_token": "second", "token": "third"})
	p := New(st, nil)

	tok, ok := p.Resolve()
	require.True(t, ok)
	assert.Equal(t, "second", tok)

	require.NoError(t, st.Set("access_token", "first"))
	slot, tok, ok := p.Lookup()
	require.True(t, ok)
	assert.Equal(t, "access_token", slot)
	assert.Equal(t, "first", tok)
}

func TestResolve_Absent(t *testing.T) {
	p := New(credstore.NewMemoryStore(nil), nil)
	tok, ok := p.Resolve()
	assert.False(t, ok)
	assert.Equal(t, "", tok)
}

func TestResolve_CustomSlots(t *testing.T) {
	st := credstore.NewMemoryStore(map[string]string{"access_token": "a", "custom": "c"})
	p := New(st, []string{"custom", "access_token"})
	tok, _ := p.Resolve()
	assert.Equal(t, "c", tok)
}

func TestResolve_JWTOnlySkipsOpaque(t *testing.T) {
	jwtTok := signed(t, time.Now().Add(time.Hour))
	st := credstore.NewMemoryStore(map[string]string{"access_token": "1|opaque", "admin_token": jwtTok})

	tok, _ := New(st, nil).Resolve()
	assert.Equal(t, "1|opaque", tok)

	tok, _ = New(st, nil, WithJWTOnly()).Resolve()
	assert.Equal(t, jwtTok, tok)
}

func TestInvalidate_ClearsAllSlots(t *testing.T) {
	st := credstore.NewMemoryStore(map[string]string{"access_token": "a", "admin_token": "b", "token": "c", "other": "d"})
	p := New(st, nil)
	require.NoError(t, p.Invalidate())

	_, ok := p.Resolve()
	assert.False(t, ok)
	other, _ := st.Get("other")
	assert.Equal(t, "d", other)
}

func TestStore_WritesFirstSlot(t *testing.T) {
	st := credstore.NewMemoryStore(nil)
	p := New(st, nil)
	require.NoError(t, p.Store("tok"))
	v, _ := st.Get("access_token")
	assert.Equal(t, "tok", v)
	assert.Error(t, p.Store(""))
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := Expiry(signed(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = Expiry("not-a-jwt")
	assert.False(t, ok)
	assert.False(t, IsJWT("a.b"))
}
