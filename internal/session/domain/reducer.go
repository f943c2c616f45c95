package domain

// Reduce applies a to s. A failed attempt leaves any previous session in place;
// logout abandons the outstanding attempt so its late settlement is ignored.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case AuthStarted:
		s.pending = act.RequestID
		s.Loading = true
		s.Error = ""
		return s

	case Authenticated:
		if s.pending == 0 || s.pending != act.RequestID {
			return s
		}
		if act.Result.Token == "" {
			s.pending = 0
			s.Loading = false
			s.Error = "empty token"
			return s
		}
		u := act.Result.User
		s.pending = 0
		s.Loading = false
		s.Error = ""
		s.User = &u
		s.Token = act.Result.Token
		s.IsAuthenticated = true
		return s

	case AuthFailed:
		if s.pending == 0 || s.pending != act.RequestID {
			return s
		}
		s.pending = 0
		s.Loading = false
		s.Error = act.Message
		return s

	case LoggedOut:
		return Initial()

	case ErrorCleared:
		s.Error = ""
		return s
	}
	return s
}

// Superseded reports whether a settles an attempt that is no longer current.
func Superseded(s State, a Action) bool {
	switch act := a.(type) {
	case Authenticated:
		return s.pending != act.RequestID
	case AuthFailed:
		return s.pending != act.RequestID
	}
	return false
}
