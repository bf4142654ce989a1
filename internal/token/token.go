package token

import (
	"crypto/hmac"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// TTL is the fixed lifetime of a session token. There is no refresh
// mechanism; expired tokens require a fresh login.
const TTL = 24 * time.Hour

var ErrMalformed = errors.New("malformed token")
var ErrBadSignature = errors.New("invalid token signature")
var ErrExpired = errors.New("token expired")

// Claims is the identity assertion embedded in a token. Immutable once
// issued; never stored server-side.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Issuer mints and verifies session tokens under a single secret key.
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer. The secret must come from operator
// configuration; an empty secret is a caller bug caught at startup.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue builds a signed token for the given identity, valid for TTL from now.
func (i *Issuer) Issue(userID, email string, now time.Time) (string, error) {
	headerJSON, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}

	iat := now.Unix()
	payloadJSON, err := json.Marshal(Claims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  iat,
		ExpiresAt: iat + int64(TTL/time.Second),
	})
	if err != nil {
		return "", err
	}

	signing := EncodeSegment(headerJSON) + "." + EncodeSegment(payloadJSON)
	sig := Sign([]byte(signing), i.secret)
	return signing + "." + EncodeSegment(sig), nil
}

// Verify checks structure, signature and expiry, in that order, and returns
// the embedded claims. The signature comparison is constant-time.
func (i *Issuer) Verify(tok string, now time.Time) (*Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	sig, err := DecodeSegment(parts[2])
	if err != nil {
		return nil, ErrMalformed
	}
	signing := parts[0] + "." + parts[1]
	if !hmac.Equal(sig, Sign([]byte(signing), i.secret)) {
		return nil, ErrBadSignature
	}

	payloadJSON, err := DecodeSegment(parts[1])
	if err != nil {
		return nil, ErrMalformed
	}
	var claims Claims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return nil, ErrMalformed
	}

	if claims.ExpiresAt < now.Unix() {
		return nil, ErrExpired
	}
	return &claims, nil
}
