package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// accessClaims is the payload of the backend's access token.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"userId"`
	Username string `json:"username,omitempty"`
	RoleName string `json:"roleName"`
	DeviceID int    `json:"deviceId,omitempty"`
}

// Decoder turns bearer tokens into Sessions.
//
// The backend is the token authority. With a secret configured the
// signature (HS256) and issuer are verified; without one the payload is
// decoded as-is and only expiry is checked, which is enough to gate screens
// because every backend call re-validates the token.
type Decoder struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewDecoder creates a Decoder. secret and issuer may be empty.
func NewDecoder(secret, issuer string) *Decoder {
	return &Decoder{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Verifies reports whether signatures are checked.
func (d *Decoder) Verifies() bool { return len(d.secret) > 0 }

// Decode parses tokenString into a Session. All failures wrap
// domain.ErrUnauthorized.
func (d *Decoder) Decode(tokenString string) (Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Session{}, fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	claims := &accessClaims{}
	if d.Verifies() {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(d.now),
		}
		if d.issuer != "" {
			opts = append(opts, jwt.WithIssuer(d.issuer))
		}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return d.secret, nil
		}, opts...)
		if err != nil {
			return Session{}, fmt.Errorf("%w: parse token: %w", domain.ErrUnauthorized, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return Session{}, fmt.Errorf("%w: decode token: %w", domain.ErrUnauthorized, err)
		}
		if claims.ExpiresAt != nil && !d.now().Before(claims.ExpiresAt.Time) {
			return Session{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, jwt.ErrTokenExpired)
		}
	}

	return sessionFromClaims(claims)
}

func sessionFromClaims(c *accessClaims) (Session, error) {
	userID := c.UserID
	if userID == 0 && c.Subject != "" {
		id, err := strconv.Atoi(c.Subject)
		if err != nil {
			return Session{}, fmt.Errorf("%w: invalid subject %q", domain.ErrUnauthorized, c.Subject)
		}
		userID = id
	}
	if userID == 0 {
		return Session{}, fmt.Errorf("%w: token has no user id", domain.ErrUnauthorized)
	}

	role := domain.ParseRole(c.RoleName)
	if !role.IsValid() {
		return Session{}, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, c.RoleName)
	}

	s := Session{UserID: userID, Username: c.Username, Role: role}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

// Sign issues an HS256 token for s that expires after ttl. It exists for
// local development and tests; production tokens come from the backend.
func (d *Decoder) Sign(s Session, ttl time.Duration) (string, error) {
	if !d.Verifies() {
		return "", errors.New("sign token: no secret configured")
	}

	now := d.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(s.UserID),
			Issuer:    d.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   s.UserID,
		Username: s.Username,
		RoleName: s.Role.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
