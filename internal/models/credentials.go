package models

// Credentials is the login request body.
type Credentials struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}
