package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

// TokenProvider issues and verifies the signed credentials that carry a
// username and a set of role names between requests.
type TokenProvider interface {
	Issue(username string, roles []string) (string, error)
	IsValid(tokenString string) bool
	Username(tokenString string) (string, error)
	Roles(tokenString string) ([]string, error)
}

type jwtProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTProvider returns a TokenProvider backed by HS256-signed JWTs.
func NewJWTProvider(secret string, ttl time.Duration) TokenProvider {
	return &jwtProvider{secret: []byte(secret), ttl: ttl}
}

func (p *jwtProvider) Issue(username string, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   username,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(p.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *jwtProvider) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (p *jwtProvider) IsValid(tokenString string) bool {
	_, err := p.parse(tokenString)
	return err == nil
}

func (p *jwtProvider) Username(tokenString string) (string, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return "", err
	}

	username, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return username, nil
}

func (p *jwtProvider) Roles(tokenString string) ([]string, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return nil, err
	}

	// after JSON decoding the claim arrives as []interface{}
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil, ErrInvalidToken
	}

	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		name, ok := r.(string)
		if !ok {
			return nil, ErrInvalidToken
		}
		roles = append(roles, name)
	}
	return roles, nil
}
