package leave

import (
	"testing"

	leaveerrors "leave-portal/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActionTokenRoundTrip(t *testing.T) {
	signer := NewActionTokenSigner("test-secret")
	leaveID := uuid.New().String()

	token, err := signer.Generate(leaveID, "approve", "manager@example.com")
	assert.NoError(t, err)

	claims, err := signer.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, leaveID, claims.LeaveID)
	assert.Equal(t, "approve", claims.Action)
	assert.Equal(t, "manager@example.com", claims.Actor)
}

func TestActionTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewActionTokenSigner("secret-a").Generate(uuid.New().String(), "reject", "")
	assert.NoError(t, err)

	_, err = NewActionTokenSigner("secret-b").Validate(token)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidActionToken)
}

func TestActionTokenRejectsGarbage(t *testing.T) {
	signer := NewActionTokenSigner("test-secret")

	_, err := signer.Validate("not-a-token")
	assert.Error(t, err)

	_, err = signer.Validate("")
	assert.Error(t, err)
}

func TestActionTokenRejectsUnknownAction(t *testing.T) {
	signer := NewActionTokenSigner("test-secret")

	token, err := signer.Generate(uuid.New().String(), "escalate", "")
	assert.NoError(t, err)

	_, err = signer.Validate(token)
	assert.Error(t, err)
}
