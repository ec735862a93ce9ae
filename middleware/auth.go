package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Actor is the authenticated employee attached to a request.
type Actor struct {
	EmployeeID uint
	Role       string
}

type accessClaims struct {
	EmployeeID uint   `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// SignAccessToken issues the shared-secret HS256 token handed out at
// login, valid for one hour.
func SignAccessToken(employeeID uint, role string) (string, error) {
	claims := accessClaims{
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// OptionalAuth attaches the actor from a Bearer token when one is
// present and valid; anonymous or expired requests pass through with
// no actor rather than a 401.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims := &accessClaims{}
		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(authHeader, "Bearer "),
			claims,
			func(t *jwt.Token) (interface{}, error) { return jwtSecret(), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err == nil && token.Valid {
			c.Set(actorKey, &Actor{EmployeeID: claims.EmployeeID, Role: claims.Role})
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or nil for anonymous
// requests.
func ActorFrom(c *gin.Context) *Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*Actor)
	return actor
}
