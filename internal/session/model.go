package session

import "errors"

// Durable storage keys. These names are part of the on-disk contract and
// match the keys the storefront has always used.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserRole     = "userRole"
	KeyIsAdmin      = "isAdmin"
	KeyUsername     = "username"
)

const RoleAdmin = "admin"

var (
	ErrNotLoggedIn = errors.New("not logged in")
)

// Credentials is a read-only snapshot of the stored identity.
type Credentials struct {
	Username     string
	Role         string
	AccessToken  string
	RefreshToken string
}

func (c Credentials) LoggedIn() bool {
	return c.AccessToken != ""
}

// tokenPair is the auth endpoints' response shape.
type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
	Username     string `json:"username"`
}
