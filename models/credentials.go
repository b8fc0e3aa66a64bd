package models

type IdentifierKind string

const (
	IdentifierEmail    IdentifierKind = "email"
	IdentifierUsername IdentifierKind = "username"
	IdentifierPhone    IdentifierKind = "phone"
)

// LoginPayload carries validated credentials for one login request. The
// Kind tag tells the backend how to look the identifier up. The password is
// transient and never persisted.
type LoginPayload struct {
	Identifier string         `json:"identifier"`
	Kind       IdentifierKind `json:"kind"`
	Password   string         `json:"password"`
}

type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
