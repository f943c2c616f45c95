package domain

// Channel partitions catalog fetches so that a detail lookup never supersedes a list load.
type Channel int

const (
	ChannelList Channel = iota
	ChannelDetail
	ChannelCategories

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelList:
		return "list"
	case ChannelDetail:
		return "detail"
	case ChannelCategories:
		return "categories"
	default:
		return "unknown"
	}
}

type State struct {
	Items           []Product `json:"items"`
	Loading         bool      `json:"loading"`
	Error           string    `json:"error,omitempty"`
	SelectedProduct *Product  `json:"selectedProduct,omitempty"`
	Categories      []string  `json:"categories,omitempty"`
	SourceMode      Source    `json:"sourceMode"`

	// latest request id per channel; zero when nothing is outstanding.
	pending [channelCount]uint64
}

func Initial() State {
	return State{
		Items:      []Product{},
		SourceMode: SourceCommerce,
	}
}

// Outstanding returns the id of the request the channel is waiting on, or zero.
func (s State) Outstanding(ch Channel) uint64 {
	if ch < 0 || ch >= channelCount {
		return 0
	}
	return s.pending[ch]
}

// settle clears the channel if id is its latest request. A false return means the
// settlement belongs to a superseded request and must be ignored.
func (s *State) settle(ch Channel, id uint64) bool {
	if ch < 0 || ch >= channelCount || s.pending[ch] == 0 || s.pending[ch] != id {
		return false
	}
	s.pending[ch] = 0
	s.Loading = false
	for _, p := range s.pending {
		if p != 0 {
			s.Loading = true
			break
		}
	}
	return true
}
