package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("username/password is incorrect")
	// ErrInvalidToken is returned for a cookie that fails verification.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Claims is the payload of the session cookie.
type Claims struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Identity is an authenticated user.
type Identity struct {
	Username string
	Name     string
}

// Authenticator checks passwords and signs session cookies.
type Authenticator struct {
	users  map[string]User
	cookie CookieConfig
	now    func() time.Time
}

// New creates an authenticator from a validated config.
func New(cfg *Config) *Authenticator {
	return &Authenticator{
		users:  cfg.Credentials.Usernames,
		cookie: cfg.Cookie,
		now:    time.Now,
	}
}

// CookieName returns the configured cookie name.
func (a *Authenticator) CookieName() string { return a.cookie.Name }

// TTL returns the cookie lifetime.
func (a *Authenticator) TTL() time.Duration {
	return time.Duration(a.cookie.ExpiryDays) * 24 * time.Hour
}

// Login checks a username and password.
func (a *Authenticator) Login(username, password string) (Identity, error) {
	u, ok := a.users[username]
	if !ok || u.Password == "" {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	name := u.Name
	if name == "" {
		name = username
	}
	return Identity{Username: username, Name: name}, nil
}

// IssueToken signs a cookie value binding id to a session.
func (a *Authenticator) IssueToken(id Identity, sessionID string) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.TTL())
	claims := Claims{
		Name:      id.Name,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.cookie.Key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies a cookie value.
func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cookie.Key), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
