package domain

// Reduce applies a to s. Lines are copied before any change so earlier snapshots stay
// valid, and Subtotal is recomputed from the resulting lines on every mutation.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case ItemAdded:
		lines := clone(s.Lines)
		if i := Find(lines, act.Product.ID); i >= 0 {
			lines[i].Quantity++
		} else {
			lines = append(lines, Line{Product: act.Product, Quantity: 1})
		}
		return withLines(s, lines)

	case ItemRemoved:
		if Find(s.Lines, act.ProductID) < 0 {
			return s
		}
		return withLines(s, without(s.Lines, act.ProductID))

	case QuantityIncremented:
		i := Find(s.Lines, act.ProductID)
		if i < 0 {
			return s
		}
		lines := clone(s.Lines)
		lines[i].Quantity++
		return withLines(s, lines)

	case QuantityDecremented:
		i := Find(s.Lines, act.ProductID)
		if i < 0 {
			return s
		}
		if s.Lines[i].Quantity <= 1 {
			return withLines(s, without(s.Lines, act.ProductID))
		}
		lines := clone(s.Lines)
		lines[i].Quantity--
		return withLines(s, lines)

	case Cleared:
		return withLines(s, []Line{})

	case ItemsOrdered:
		if len(act.Quantities) == 0 {
			return s
		}
		lines := make([]Line, 0, len(s.Lines))
		for _, l := range s.Lines {
			l.Quantity -= act.Quantities[l.ID]
			if l.Quantity > 0 {
				lines = append(lines, l)
			}
		}
		return withLines(s, lines)

	case RemoteStarted:
		s.pendingRemote = act.RequestID
		s.Loading = true
		s.Error = ""
		return s

	case RemoteSynced:
		if s.pendingRemote == 0 || s.pendingRemote != act.RequestID {
			return s
		}
		s.pendingRemote = 0
		s.Loading = false
		s.Error = ""
		s.RemoteCartID = act.CartID
		return withLines(s, normalize(act.Lines))

	case RemoteFailed:
		if s.pendingRemote == 0 || s.pendingRemote != act.RequestID {
			return s
		}
		s.pendingRemote = 0
		s.Loading = false
		s.Error = act.Message
		return s
	}
	return s
}

// Superseded reports whether a settles a remote request that is no longer current.
func Superseded(s State, a Action) bool {
	switch act := a.(type) {
	case RemoteSynced:
		return s.pendingRemote != act.RequestID
	case RemoteFailed:
		return s.pendingRemote != act.RequestID
	}
	return false
}

func withLines(s State, lines []Line) State {
	s.Lines = lines
	s.Subtotal = Subtotal(lines)
	return s
}

func clone(lines []Line) []Line {
	out := make([]Line, len(lines), len(lines)+1)
	copy(out, lines)
	return out
}

func without(lines []Line, productID int) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ID != productID {
			out = append(out, l)
		}
	}
	return out
}

// normalize drops non-positive quantities and merges duplicate product ids so that
// server payloads cannot break the one-line-per-product invariant.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := Find(out, l.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}
