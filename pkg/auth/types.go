package auth

// Account is a registered user identity. PasswordHash holds the bcrypt digest
// of the account's credential; the plaintext is never persisted.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	PasswordHash string `json:"-"`
}

// AccountDraft carries signup input. Password is plaintext here and is hashed
// before the draft ever reaches storage.
type AccountDraft struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password"`
}
