package token

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims structure for custom claims in JWT
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

var (
	// JWTSecret key for signing and validation; overridden from the
	// environment at startup so a deployment never runs on the default.
	JWTSecret       = []byte("secure_secret_key")
	tokenExpiration = 24 * time.Hour
)

func init() {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		JWTSecret = []byte(s)
	}
}

// GenerateJWT generates a signed HS256 token for the user
func GenerateJWT(userID, name, issuer string) (string, error) {
	claims := Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// StripBearer removes the "Bearer " prefix from an Authorization header value
func StripBearer(header string) (string, error) {
	if len(header) < 7 || header[:7] != "Bearer " {
		return "", errors.New("invalid or missing bearer token")
	}
	return header[7:], nil
}
