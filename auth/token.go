package auth

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// EncodeToken signs a bearer token carrying only the user's email.
// Role flags are re-checked against the database on every request, so
// the token itself stays minimal.
func EncodeToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// DecodeEmail validates the signature and returns the email claim.
func DecodeEmail(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}
