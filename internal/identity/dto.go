package identity

// UserAccount is the single stored account. The password field holds
// whatever the active credential scheme produced (raw for plain,
// an Argon2id hash otherwise).
type UserAccount struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO is the transport shape that omits the credential.
type UserDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionDTO is the externally visible session state.
type SessionDTO struct {
	LoggedIn bool     `json:"logged_in"`
	User     *UserDTO `json:"user,omitempty"`
}

func userDTO(account *UserAccount) *UserDTO {
	if account == nil {
		return nil
	}
	return &UserDTO{
		Username: account.Username,
		Email:    account.Email,
	}
}
