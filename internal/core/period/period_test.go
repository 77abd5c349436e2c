package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantType  Type
		wantDays  int
		wantError bool
	}{
		{name: "daily", token: "daily", wantType: Daily, wantDays: 7},
		{name: "weekly", token: "weekly", wantType: Weekly, wantDays: 30},
		{name: "monthly", token: "monthly", wantType: Monthly, wantDays: 90},
		{name: "yearly", token: "yearly", wantType: Yearly, wantDays: 730},
		{name: "hourly unsupported", token: "hourly", wantError: true},
		{name: "empty invalid", token: "", wantError: true},
		{name: "case variant rejected", token: "Monthly", wantError: true},
		{name: "upper case rejected", token: "DAILY", wantError: true},
		{name: "whitespace rejected", token: " monthly", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Resolve(tc.token)
			if tc.wantError {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidType))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantType, spec.Type)
			require.Equal(t, tc.wantDays, spec.WindowDays)
		})
	}
}

func TestResolve_TotalOverEnum(t *testing.T) {
	for _, pt := range Types() {
		spec, err := Resolve(string(pt))
		require.NoError(t, err)
		require.Equal(t, pt, spec.Type)
		require.True(t, Valid(string(pt)))
	}
}

func TestSpec_WindowStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	spec, err := Resolve("daily")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 8, 10, 30, 0, 0, time.UTC), spec.WindowStart(now))

	spec, err = Resolve("yearly")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), spec.WindowStart(now))
}

func TestSpec_Truncate(t *testing.T) {
	// Wednesday, mid-afternoon, with sub-second noise.
	ts := time.Date(2026, 2, 11, 15, 42, 7, 123456789, time.UTC)

	tests := []struct {
		name string
		ptyp Type
		in   time.Time
		want time.Time
	}{
		{name: "daily floors to midnight", ptyp: Daily, in: ts,
			want: time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)},
		{name: "weekly floors to monday", ptyp: Weekly, in: ts,
			want: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
		{name: "weekly on sunday floors back six days", ptyp: Weekly,
			in:   time.Date(2026, 2, 15, 3, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
		{name: "weekly on monday is identity at midnight", ptyp: Weekly,
			in:   time.Date(2026, 2, 9, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
		{name: "monthly floors to first", ptyp: Monthly, in: ts,
			want: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "yearly floors to jan 1", ptyp: Yearly, in: ts,
			want: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := Spec{Type: tc.ptyp}
			require.Equal(t, tc.want, spec.Truncate(tc.in))
		})
	}
}

func TestSpec_TruncateNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	// 08:30 KST on March 1st is 23:30 UTC on February 28th; grouping must
	// agree with the UTC window filter, so the UTC date wins.
	in := time.Date(2026, 3, 1, 8, 30, 0, 0, loc)

	spec := Spec{Type: Monthly}
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), spec.Truncate(in))
}
