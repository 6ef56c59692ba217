package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-01-01", "2024-01-01T00:00:00", "2024-01-01T00:00:00Z", "2024-01-01T02:00:00+02:00"} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		require.True(t, want.Equal(got), in)
	}

	_, err := Parse("01/02/2024")
	require.Error(t, err)
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional("")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ParseOptional("2024-03-05")
	require.NoError(t, err)
	require.Equal(t, 5, got.Day())
}
