package cyphernode

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued bearer token stays valid.
const TokenLifetime = time.Hour

// IssueToken builds the HS256 bearer token expected by the gateway. The
// payload is {"id": clientID, "exp": <unix millis of now + TokenLifetime>}
// and secret is used as the raw HMAC key.
func IssueToken(clientID string, secret []byte, now time.Time) (string, error) {
	if now.Before(time.Unix(0, 0)) {
		return "", newError(KindAuth, "token", "", ErrClockBeforeEpoch)
	}
	if len(secret) == 0 {
		return "", newError(KindAuth, "token", "empty secret", nil)
	}

	claims := jwt.MapClaims{
		"id":  clientID,
		"exp": now.UnixMilli() + TokenLifetime.Milliseconds(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", newError(KindAuth, "token", "failed to sign token", err)
	}
	return token, nil
}

func (c *Client) bearer() (string, error) {
	token, err := IssueToken(c.clientID, c.secret, c.now())
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
