package domain

type Action interface {
	ActionType() string
	sessionAction()
}

// AuthStarted opens an attempt. Only the newest attempt may settle.
type AuthStarted struct {
	Flow      Flow
	RequestID uint64
}

type Authenticated struct {
	Flow      Flow
	RequestID uint64
	Result    AuthResult
}

type AuthFailed struct {
	Flow      Flow
	RequestID uint64
	Message   string
}

type LoggedOut struct{}

type ErrorCleared struct{}

func (a AuthStarted) ActionType() string   { return "session/" + string(a.Flow) + "/pending" }
func (a Authenticated) ActionType() string { return "session/" + string(a.Flow) + "/fulfilled" }
func (a AuthFailed) ActionType() string    { return "session/" + string(a.Flow) + "/rejected" }
func (LoggedOut) ActionType() string       { return "session/logout" }
func (ErrorCleared) ActionType() string    { return "session/clearError" }

func (AuthStarted) sessionAction()   {}
func (Authenticated) sessionAction() {}
func (AuthFailed) sessionAction()    {}
func (LoggedOut) sessionAction()     {}
func (ErrorCleared) sessionAction()  {}
