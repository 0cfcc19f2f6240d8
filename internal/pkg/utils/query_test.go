package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	cases := []struct {
		skip, limit         string
		wantSkip, wantLimit int
	}{
		{"", "", 0, 100},
		{"10", "20", 10, 20},
		{"-5", "0", 0, 1},
		{"x", "500", 0, 100},
	}
	for _, tc := range cases {
		skip, limit := Page(tc.skip, tc.limit)
		assert.Equal(t, tc.wantSkip, skip, tc)
		assert.Equal(t, tc.wantLimit, limit, tc)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"wifi", "laundry", "ac"}, SplitList("wifi, laundry,,ac"))
}
