package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("token is missing employee_id or role")

type Service interface {
	// GenerateAccessToken mints a token for the acting user. Login is handled
	// elsewhere; this serves tests and operator tooling.
	GenerateAccessToken(actor user.ActingUser) (token string, expiresAt int64, err error)
	ActingUser(claims map[string]interface{}) (user.ActingUser, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	if accessTokenExpirationTime <= 0 {
		accessTokenExpirationTime = time.Hour
	}
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(actor user.ActingUser) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"employee_id": actor.EmployeeID,
		"role":        string(actor.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ActingUser reads the identity claims of a verified access token.
func (j *JWTService) ActingUser(claims map[string]interface{}) (user.ActingUser, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.ActingUser{}, ErrInvalidClaims
	}
	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if employeeID == "" || !ok {
		return user.ActingUser{}, ErrInvalidClaims
	}
	return user.ActingUser{EmployeeID: employeeID, Role: role}, nil
}
