package domain

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	LastLogin string `json:"lastLogin,omitempty"`
}
