// Package session carries the ambient locale of a request or CLI run in its
// context.
package session

import (
	"context"
	"sync"

	"translayer/internal/ports/output"
)

// Session is the mutable per-request state. It is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	locale string
}

func New(locale string) *Session {
	return &Session{locale: locale}
}

func (s *Session) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

func (s *Session) SetLocale(code string) {
	s.mu.Lock()
	s.locale = code
	s.mu.Unlock()
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

var _ output.LocaleHolder = Holder{}

// Holder implements output.LocaleHolder over the session stored in the
// context. Without a session Get reports no locale and Set is a no-op.
type Holder struct{}

func (Holder) Get(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	code := s.Locale()
	return code, code != ""
}

func (Holder) Set(ctx context.Context, code string) {
	if s, ok := FromContext(ctx); ok {
		s.SetLocale(code)
	}
}
