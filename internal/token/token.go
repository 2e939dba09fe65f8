// Package token resolves the bearer credential sent with every API request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSlots are the storage keys scanned by Resolve, in priority order.
var DefaultSlots = []string{"access_token", "admin_token", "token"}

// Storage is the persistent key-value store holding credentials.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

type Provider struct {
	storage    Storage
	slots      []string
	requireJWT bool
}

type Option func(*Provider)

// WithJWTOnly skips stored values that are not JWT-shaped.
func WithJWTOnly() Option {
	return func(p *Provider) { p.requireJWT = true }
}

// New returns a Provider scanning slots in order. With no slots it uses
// DefaultSlots. The order is fixed for the life of the Provider.
func New(storage Storage, slots []string, opts ...Option) *Provider {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	p := &Provider{storage: storage, slots: append([]string(nil), slots...)}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Resolve returns the first non-empty credential. A missing credential is
// not an error: callers treat it as unauthenticated.
func (p *Provider) Resolve() (string, bool) {
	_, tok, ok := p.Lookup()
	return tok, ok
}

// Lookup is Resolve that also reports which slot the credential came from.
func (p *Provider) Lookup() (slot, tok string, ok bool) {
	for _, s := range p.slots {
		v, err := p.storage.Get(s)
		if err != nil || v == "" {
			continue
		}
		if p.requireJWT && !IsJWT(v) {
			continue
		}
		return s, v, true
	}
	return "", "", false
}

// Store saves tok under the highest-priority slot.
func (p *Provider) Store(tok string) error {
	if tok == "" {
		return errors.New("empty token")
	}
	return p.storage.Set(p.slots[0], tok)
}

// Invalidate clears every known slot.
func (p *Provider) Invalidate() error {
	return p.storage.Remove(p.slots...)
}

func (p *Provider) Slots() []string {
	return append([]string(nil), p.slots...)
}

// IsJWT reports whether tok parses as a JWT. The signature is not checked.
func IsJWT(tok string) bool {
	_, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	return err == nil
}

// Expiry returns the exp claim of a JWT without verifying it.
func Expiry(tok string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
