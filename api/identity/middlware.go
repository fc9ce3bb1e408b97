package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	// ContextUserID is the key used to store the caller's uuid.UUID in the Gin context.
	ContextUserID = "userID"
)

var errNoToken = errors.New("no bearer token")

// Authoriz rejects requests without a valid bearer token.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, ts); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// Identify attaches the caller to the context when a bearer token is sent and lets
// anonymous requests through. A token that fails validation is still rejected.
func Identify(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authenticate(c, ts)
		if err != nil && !errors.Is(err, errNoToken) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or uuid.Nil for anonymous requests.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func authenticate(c *gin.Context, ts i.Tokenizer) error {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return errNoToken
	}

	// "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return errors.New("malformed authorization header")
	}

	claims, err := ts.Decode(parts[1])
	if err != nil {
		return err
	}

	raw, _ := claims[i.ClaimUserID].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return errors.New("token carries no user id")
	}

	c.Set(ContextUserClaims, claims)
	c.Set(ContextUserID, userID)
	return nil
}
