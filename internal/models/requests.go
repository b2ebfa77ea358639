package models

// RegisterRequest represents a password account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginRequest represents a password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SocialLoginRequest carries the identity asserted by the social provider popup
type SocialLoginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// LoginResult is returned by a successful password login
type LoginResult struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// SocialLoginResult is returned by a successful social login
type SocialLoginResult struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	IsNewUser bool        `json:"isNewUser"`
	User      UserProfile `json:"user"`
	UserID    int64       `json:"-"`
}

// CreateWorkflowRequest represents a workflow creation.
// CallerEmail always comes from the authenticated session, never the body.
type CreateWorkflowRequest struct {
	Name        string         `json:"name"`
	Status      WorkflowStatus `json:"status,omitempty"`
	Schedule    string         `json:"schedule,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	CallerEmail string         `json:"-"`
}

// ToggleStatusRequest represents a status flip between Running and Paused
type ToggleStatusRequest struct {
	NewStatus WorkflowStatus `json:"newStatus"`
}
