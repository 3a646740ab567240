package auth

// UserClaims is the authenticated caller identity resolved by the auth
// middleware. Handlers read it from the request context; there is no
// process-wide current user.
type UserClaims interface {
	UserID() string
	Email() string
	Source() string
}

// JWTClaims carries identity parsed from a bearer token.
type JWTClaims struct {
	UserUUID  string
	UserEmail string
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Email() string  { return c.UserEmail }
func (c *JWTClaims) Source() string { return "JWT" }

// SessionClaims carries identity resolved from a Redis session.
type SessionClaims struct {
	UserUUID  string
	UserEmail string
	SessionID string
}

func (c *SessionClaims) UserID() string { return c.UserUUID }
func (c *SessionClaims) Email() string  { return c.UserEmail }
func (c *SessionClaims) Source() string { return "SESSION" }
