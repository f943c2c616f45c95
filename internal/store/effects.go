package store

import (
	session "github.com/dwikikusuma/storefront/internal/session/domain"
)

// OnAuthenticated calls fn each time the session goes from anonymous to
// authenticated. fn runs on the dispatching goroutine; start long work on a new one.
func (s *Store) OnAuthenticated(fn func(session.State)) (unsubscribe func()) {
	// only touched from listener calls, which notifyMu serialises
	was := s.State().Session.IsAuthenticated
	return s.Subscribe(func(st State) {
		now := st.Session.IsAuthenticated
		if now && !was {
			fn(st.Session)
		}
		was = now
	})
}
