package core

// Credentials holds the API user/key pair sent with every request.
type Credentials struct {
	apiUser string
	apiKey  string
}

// NewCredentials creates a credential pair. Both values are required.
func NewCredentials(apiUser, apiKey string) (Credentials, error) {
	if apiUser == "" || apiKey == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return Credentials{apiUser: apiUser, apiKey: apiKey}, nil
}

// User returns the API user.
func (c Credentials) User() string {
	return c.apiUser
}

// Key returns the API key.
func (c Credentials) Key() string {
	return c.apiKey
}

// String hides the key so credentials are safe to log.
func (c Credentials) String() string {
	return c.apiUser + ":****"
}
