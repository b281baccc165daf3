package nstime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeapSecondsBetween_NoTableInstalled(t *testing.T) {
	SetLeapSecondTable(nil)

	require.Equal(t, 0, LeapSecondsBetween(0, NsTime(nsPerSecond)*1000))
}

func TestLeapSecondsBetween_CountsWithinRange(t *testing.T) {
	SetLeapSecondTable(LeapSecondTable{NsTime(1483228826000000000), NsTime(1435708827000000000)})
	defer SetLeapSecondTable(nil)

	require.Equal(t, 1, LeapSecondsBetween(NsTime(1483228800000000000), NsTime(1483228900000000000)))
	require.Equal(t, 2, LeapSecondsBetween(NsTime(1400000000000000000), NsTime(1500000000000000000)))
	require.Equal(t, 0, LeapSecondsBetween(NsTime(1500000000000000000), NsTime(1600000000000000000)))
}

func TestAdjustForLeapSeconds_AddsOneSecondPerCrossing(t *testing.T) {
	SetLeapSecondTable(LeapSecondTable{NsTime(1483228826000000000)})
	defer SetLeapSecondTable(nil)

	start := NsTime(1483228800000000000)
	end := NsTime(1483228900000000000)

	adjusted := AdjustForLeapSeconds(start, end)
	require.Equal(t, end+NsTime(nsPerSecond), adjusted)
}

func TestAdjustForLeapSeconds_NoCrossingLeavesUnchanged(t *testing.T) {
	SetLeapSecondTable(LeapSecondTable{NsTime(1483228826000000000)})
	defer SetLeapSecondTable(nil)

	end := NsTime(1400000000000000000)
	require.Equal(t, end, AdjustForLeapSeconds(0, end))
}
