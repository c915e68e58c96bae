// Package auth mints and parses the JWTs handed out after a successful
// credential validation, so downstream services can consume the federation
// result without re-querying the store.
package auth

import (
	"time"

	"github.com/dmitrijs2005/userfed/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the composite identity id.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID string
}

func GenerateToken(identityID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		IdentityID: identityID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetIdentityIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.IdentityID, nil
}
