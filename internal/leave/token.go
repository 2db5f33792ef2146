package leave

import (
	"time"

	leaveerrors "leave-portal/internal/leave/errors"

	"github.com/golang-jwt/jwt/v5"
)

// actionTokenTTL matches the retention of the approval emails: links older
// than two weeks stop working.
const actionTokenTTL = 14 * 24 * time.Hour

// ActionTokenClaims binds a one-click email link to exactly one request and
// one decision, so a leaked approve link cannot be replayed as a reject or
// pointed at another request.
type ActionTokenClaims struct {
	LeaveID string `json:"leave_id"`
	Action  string `json:"action"`
	Actor   string `json:"actor,omitempty"`
	jwt.RegisteredClaims
}

type ActionTokenSigner struct {
	secret []byte
}

func NewActionTokenSigner(secret string) *ActionTokenSigner {
	return &ActionTokenSigner{secret: []byte(secret)}
}

func (s *ActionTokenSigner) Generate(leaveID, action, actor string) (string, error) {
	now := time.Now()
	claims := ActionTokenClaims{
		LeaveID: leaveID,
		Action:  action,
		Actor:   actor,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(actionTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token and returns its claims. Every failure
// mode (bad signature, expiry, wrong method) maps to the same opaque error.
func (s *ActionTokenSigner) Validate(token string) (ActionTokenClaims, error) {
	var claims ActionTokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, leaveerrors.ErrInvalidActionToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ActionTokenClaims{}, leaveerrors.ErrInvalidActionToken
	}
	switch claims.Action {
	case "approve", "reject":
	default:
		return ActionTokenClaims{}, leaveerrors.ErrInvalidActionToken
	}
	return claims, nil
}
