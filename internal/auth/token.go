package auth

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenCookie = "access_token"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid access token")
	ErrMissingUserID = errors.New("access token has no user_id claim")
	ErrInvalidUserID = errors.New("access token user_id is not a valid id")
)

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID uint
	Role   string
}

// ExtractAccessToken returns the token from the access_token cookie,
// falling back to a Bearer Authorization header. Empty when neither is set.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// ParseAccessToken validates an HS256 token and returns its claims.
func ParseAccessToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// JSON numbers decode as float64.
	uid, ok := mapClaims["user_id"].(float64)
	if !ok || uid <= 0 {
		return nil, ErrMissingUserID
	}
	if uid != math.Trunc(uid) || uid > math.MaxUint32 {
		return nil, ErrInvalidUserID
	}

	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: uint(uid), Role: role}, nil
}
