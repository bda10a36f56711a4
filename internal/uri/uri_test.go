package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "ipfs scheme",
			raw:      "ipfs://QmHash/1.png",
			expected: "https://ipfs.io/ipfs/QmHash/1.png",
		},
		{
			name:     "arweave scheme",
			raw:      "ar://abc123",
			expected: "https://arweave.net/abc123",
		},
		{
			name:     "https passthrough",
			raw:      "https://cdn.example.com/1.png",
			expected: "https://cdn.example.com/1.png",
		},
		{
			name:     "empty passthrough",
			raw:      "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.raw))
		})
	}
}
