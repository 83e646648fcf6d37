package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"seotda-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "seotda-server"

// Audience is the intended JWT audience
const Audience = "seotda"

// TTL is how long a signed token is valid
const TTL = time.Hour * 24 * 30

// ErrMissingSecret is returned when no signing secret is configured
var ErrMissingSecret = errors.New("missing jwt secret")

var secret []byte

// LoadSecret will load the signing secret from the configuration
// this method should only be called once.
func LoadSecret() error {
	return SetSecret(config.Instance().JWT.Secret)
}

// SetSecret sets the HMAC secret used to sign and validate tokens
func SetSecret(s string) error {
	if s == "" {
		return ErrMissingSecret
	}

	secret = []byte(s)
	return nil
}

// Sign will sign a JWT for the user ID
func Sign(userID int64) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(TTL)),
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(userID, 10),
	})

	return token.SignedString(secret)
}

// ValidUserID will validate a signed JWT
func ValidUserID(signedString string) (int64, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return 0, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return 0, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return 0, errors.New("invalid issuer")
			}

			return strconv.ParseInt(claims.Subject, 10, 64)
		}

		return 0, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return 0, errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}

	return false
}
