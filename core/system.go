package core

// System stores system information.
type System struct {
	Admins   []string
	Location string
	Version  string
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 {
		return false
	}

	for _, a := range s.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// AuthContext identifies the caller of a mutating operation. Admin-gated
// mutators validate it against the system role table instead of any
// ambient admin state.
type AuthContext struct {
	CallerID string `json:"caller_id"`
}

// NewAuth auth context for the caller
func NewAuth(callerID string) *AuthContext {
	return &AuthContext{CallerID: callerID}
}
