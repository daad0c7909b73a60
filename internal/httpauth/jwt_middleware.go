// Package httpauth implements the bearer-token middleware gating the
// optional HTTP front-end. Grounded on 
// internal/middleware/auth JWT middleware, scaled down: the translator has
// no concept of a user account, so there is one shared HS256 secret and no
// user store or per-permission checks, only "is this request authenticated".
package httpauth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

// ErrInvalidToken indicates authentication failed due to a missing or
// invalid bearer token.
var ErrInvalidToken = errors.New("invalid or missing authentication token")

// Middleware validates a shared-secret HS256 bearer token on every request.
type Middleware struct {
	secret []byte
	issuer string
	logger logger.Logger
}

// New returns a Middleware that validates tokens signed with secret.
func New(secret, issuer string, log logger.Logger) *Middleware {
	return &Middleware{secret: []byte(secret), issuer: issuer, logger: log}
}

// Claims is the minimal claim set the translator's HTTP front-end issues
// and expects: a run-correlation subject and the standard registered
// claims.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken mints a bearer token for subject valid for ttl, signed with the
// middleware's shared secret so Authenticate accepts it.
func (m *Middleware) IssueToken(subject string, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Authenticate returns a gin middleware rejecting requests without a valid
// "Authorization: Bearer <token>" header.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			m.reject(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			m.reject(c, "authorization header must be 'Bearer <token>'")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			m.reject(c, "token validation failed")
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}

func (m *Middleware) reject(c *gin.Context, reason string) {
	m.logger.Warn("rejected unauthenticated request",
		logger.String("path", c.Request.URL.Path),
		logger.String("reason", reason))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"code":    "UNAUTHORIZED",
		"message": reason,
	})
}
