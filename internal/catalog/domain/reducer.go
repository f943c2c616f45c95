package domain

// Reduce applies a to s and returns the next state. It never mutates slices reachable
// from s; list payloads replace the previous slice wholesale.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case FetchStarted:
		if act.Channel < 0 || act.Channel >= channelCount {
			return s
		}
		s.pending[act.Channel] = act.RequestID
		s.Loading = true
		s.Error = ""

	case ListFetched:
		if !s.settle(ChannelList, act.RequestID) {
			return s
		}
		s.Items = act.Items
		if s.Items == nil {
			s.Items = []Product{}
		}
		s.SourceMode = act.Source
		s.Error = ""

	case ProductFetched:
		if !s.settle(ChannelDetail, act.RequestID) {
			return s
		}
		p := act.Product
		s.SelectedProduct = &p
		s.Error = ""

	case CategoriesFetched:
		if !s.settle(ChannelCategories, act.RequestID) {
			return s
		}
		s.Categories = act.Categories
		s.SourceMode = SourceRecipe
		s.Error = ""

	case FetchFailed:
		if !s.settle(act.Channel, act.RequestID) {
			return s
		}
		s.Error = act.Message

	case SelectedProductCleared:
		s.SelectedProduct = nil

	case ErrorCleared:
		s.Error = ""
	}
	return s
}

// Superseded reports whether a is a settlement for a request that is no longer the
// latest on its channel.
func Superseded(s State, a Action) bool {
	switch act := a.(type) {
	case ListFetched:
		return s.Outstanding(ChannelList) != act.RequestID
	case ProductFetched:
		return s.Outstanding(ChannelDetail) != act.RequestID
	case CategoriesFetched:
		return s.Outstanding(ChannelCategories) != act.RequestID
	case FetchFailed:
		return s.Outstanding(act.Channel) != act.RequestID
	}
	return false
}
