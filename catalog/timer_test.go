// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	containers "github.com/wundergraph/go-containers"
)

func TestParseTimeUnit(t *testing.T) {
	for _, u := range []TimeUnit{Nano, Micro, Second} {
		got, err := ParseTimeUnit(u.String())
		require.NoError(t, err)
		require.Equal(t, u, got)
	}

	got, err := ParseTimeUnit("MICRO")
	require.NoError(t, err)
	require.Equal(t, Micro, got)

	_, err = ParseTimeUnit("milli")
	require.Error(t, err)

	require.Equal(t, "unknown", TimeUnit(7).String())
	require.Equal(t, "unknown", TimeUnit(-1).String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		u    TimeUnit
		want string
	}{
		{d: 1500 * time.Nanosecond, u: Nano, want: "1500.000 nano seconds"},
		{d: 1500 * time.Nanosecond, u: Micro, want: "1.500 micro seconds"},
		{d: 2500 * time.Millisecond, u: Second, want: "2.500 seconds"},
		{d: 0, u: Micro, want: "0.000 micro seconds"},
	}
	for _, tt := range tests {
		buf := containers.NewBuffer()
		FormatDuration(buf, tt.d, tt.u)
		require.Equal(t, tt.want, buf.String())
	}
}

func TestFormatDurationAppends(t *testing.T) {
	buf := containers.Format("took ")
	FormatDuration(buf, time.Second, Second)
	require.Equal(t, "took 1.000 seconds", buf.String())
}
