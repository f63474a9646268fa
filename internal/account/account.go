// Package account handles the handshake a client performs before joining
// a match: verifying its JWT session token and checking its declared
// protocol version against the server's, rejecting stale clients before
// they can desync a match by sending requests the server no longer
// understands.
package account

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ProtocolVersion is the wire-protocol version this build of matchserver
// speaks. Bump it whenever internal/protocol's envelope shape changes in
// a way older clients can't decode.
const ProtocolVersion = 1

// Claims is the JWT payload identifying a session.
type Claims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for userID.
func IssueToken(userID, secret string) (string, error) {
	claims := &Claims{UserID: userID}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies token and returns the session's user id.
func ParseToken(token, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("account: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("account: parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("account: token not valid")
	}
	return claims.UserID, nil
}

// ErrVersionMismatch is returned by CheckVersion when the client's
// declared protocol version can't be served by this build.
var ErrVersionMismatch = errors.New("account: client protocol version is incompatible")

// CheckVersion validates a connecting client's declared protocol version
// against ProtocolVersion. Only an exact match is accepted; the wire
// format has no backward-compatibility guarantees across versions.
func CheckVersion(clientVersion int) error {
	if clientVersion != ProtocolVersion {
		return fmt.Errorf("%w: client=%d server=%d", ErrVersionMismatch, clientVersion, ProtocolVersion)
	}
	return nil
}

// Handshake is the result of a successful connect handshake: the
// session's user id and the token it was verified from.
type Handshake struct {
	UserID string
	Token  string
}

// Authenticate verifies token and the client's declared protocol version
// together, the single entry point a connector/gate-equivalent calls
// before handing a connection off to a MatchController.
func Authenticate(token string, clientVersion int, secret string) (Handshake, error) {
	if err := CheckVersion(clientVersion); err != nil {
		return Handshake{}, err
	}
	userID, err := ParseToken(token, secret)
	if err != nil {
		return Handshake{}, err
	}
	return Handshake{UserID: userID, Token: token}, nil
}
