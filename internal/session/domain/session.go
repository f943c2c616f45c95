package domain

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegistrationData struct {
	Username  string `json:"username" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResult is what a successful login or registration yields.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Flow names the operation that produced an authentication attempt.
type Flow string

const (
	FlowLogin    Flow = "login"
	FlowRegister Flow = "register"
)

type State struct {
	User            *User  `json:"user,omitempty"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`

	pending uint64
}

func Initial() State { return State{} }

// Anonymous reports whether no session is held.
func (s State) Anonymous() bool { return !s.IsAuthenticated }
