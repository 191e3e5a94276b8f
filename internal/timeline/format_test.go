package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		min  int
		want string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h 00min"},
		{90, "1h 30min"},
		{23*60 + 59, "23h 59min"},
		{24 * 60, "1d 0h 00min"},
		{2*24*60 + 3*60 + 15, "2d 3h 15min"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMinutes(tc.min), "minutes=%d", tc.min)
	}
}

func TestFormatMinutes_Negative(t *testing.T) {
	assert.Equal(t, "n/a", FormatMinutes(-1))
}
