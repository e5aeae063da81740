package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOrderNumberAfter(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"PO-000001", "PO-000002"},
		{"PO-000099", "PO-000100"},
		{"PO-999999", "PO-1000000"},
		{"PO-1000000", "PO-1000001"},
	}
	for _, tc := range cases {
		got, err := nextOrderNumberAfter(tc.last)
		require.NoError(t, err, "after %s", tc.last)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextOrderNumberAfterRejectsMalformed(t *testing.T) {
	for _, last := range []string{"PO-", "PO-abc", "ORDER-42", ""} {
		_, err := nextOrderNumberAfter(last)
		assert.Error(t, err, "input %q", last)
	}
}
