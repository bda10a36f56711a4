package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUserRejection(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "rejected", err: errors.New("user rejected the request"), expected: true},
		{name: "rejected mixed case", err: errors.New("Transaction REJECTED by signer"), expected: true},
		{name: "denied", err: errors.New("signature request denied"), expected: true},
		{name: "other error", err: errors.New("nonce too low"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsUserRejection(tc.err))
		})
	}
}

func TestClassifySubmissionError(t *testing.T) {
	rejected := ClassifySubmissionError(errors.New("user rejected the request"))
	assert.Equal(t, SubmissionUserRejected, rejected.Kind)

	unknown := ClassifySubmissionError(errors.New("insufficient funds"))
	assert.Equal(t, SubmissionUnknown, unknown.Kind)
}

func TestChainReadErrorUnwraps(t *testing.T) {
	cause := errors.New("rpc unavailable")
	err := NewChainReadError("mintPrice", fmt.Errorf("failed to call contract: %w", cause))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mintPrice")
}

func TestSubmissionErrorUnwraps(t *testing.T) {
	cause := errors.New("user rejected the request")
	err := ClassifySubmissionError(cause)

	assert.ErrorIs(t, err, cause)
}
