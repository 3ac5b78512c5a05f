package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the typ claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is used as an access
// token or the other way round.
var ErrWrongTokenType = errors.New("wrong token type")

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Identity is the subject a token pair is minted for
type Identity struct {
	UserID int64
	Email  string
	Name   string
}

// Issuer mints and verifies HS256 token pairs
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates a token issuer
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL returns the refresh token lifetime
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Mint creates a new access/refresh pair
func (i *Issuer) Mint(id Identity) (TokenPair, error) {
	at, err := i.sign(id, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := i.sign(id, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt}, nil
}

func (i *Issuer) sign(id Identity, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.Name,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(i.secret)
}

// ParseAccess verifies an access token
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TokenTypeAccess)
}

// ParseRefresh verifies a refresh token
func (i *Issuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TokenTypeRefresh)
}

func (i *Issuer) parse(tokenStr, typ string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if c.Type != typ {
		return nil, ErrWrongTokenType
	}
	return c, nil
}
