package lib

import (
	"errors"
	"fmt"
	"net/http"
	"storefront_server/structs"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ParseToken parses and validates an HS256 session token and returns its claims.
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid email claim", ErrInvalidToken)
	}

	// absent means unverified
	verified, _ := claims["email_verified"].(bool)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	return &structs.AuthClaims{
		Sub:      sub,
		Email:    email,
		Verified: verified,
		Exp:      exp.Time,
	}, nil
}

// SignToken issues an HS256 token carrying claims. Issuance belongs to the
// auth service in production; this is used by tooling and tests.
func SignToken(claims structs.AuthClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            claims.Sub,
		"email":          claims.Email,
		"email_verified": claims.Verified,
		"exp":            claims.Exp.Unix(),
		"iat":            time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ExtractClaims reads the session token from the Authorization bearer header,
// falling back to the session cookie.
func ExtractClaims(r *http.Request, cookieName, secret string) (*structs.AuthClaims, error) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		v, err := GetCookieValue(cookieName, r)
		if err != nil || v == "" {
			return nil, ErrMissingToken
		}
		tokenStr = v
	}

	return ParseToken(tokenStr, secret)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
