package sid

import (
	"testing"

	"github.com/mseedgo/miniseed/errs"
	"github.com/stretchr/testify/require"
)

func TestToNSLC_ExtendedChannel(t *testing.T) {
	nslc, err := ToNSLC("FDSN:XX_TEST__L_H_Z")
	require.NoError(t, err)
	require.Equal(t, NSLC{Network: "XX", Station: "TEST", Location: "", Channel: "LHZ"}, nslc)
}

func TestToNSLC_CompactChannel(t *testing.T) {
	nslc, err := ToNSLC("FDSN:NET_STA_LOC_CHA")
	require.NoError(t, err)
	require.Equal(t, NSLC{Network: "NET", Station: "STA", Location: "LOC", Channel: "CHA"}, nslc)
}

func TestToNSLC_MalformedPrefix(t *testing.T) {
	_, err := ToNSLC("XX_TEST__L_H_Z")
	require.ErrorIs(t, err, errs.ErrMalformedSid)
}

func TestToNSLC_MalformedFieldCount(t *testing.T) {
	_, err := ToNSLC("FDSN:XX_TEST_L_H_Z")
	require.Error(t, err)
}

func TestFromNSLC_RoundTrip(t *testing.T) {
	s := FromNSLC("XX", "TEST", "", "LHZ")
	require.Equal(t, "FDSN:XX_TEST__L_H_Z", s)
	require.Len(t, s, 19)

	nslc, err := ToNSLC(s)
	require.NoError(t, err)
	require.Equal(t, "LHZ", nslc.Channel)
}

func TestFromNSLC_ExtendedChannelPassthrough(t *testing.T) {
	s := FromNSLC("XX", "STA1", "00", "H_D_F")
	require.Equal(t, "FDSN:XX_STA1_00_H_D_F", s)
}

func TestFromNSLC_TrimsSpaces(t *testing.T) {
	s := FromNSLC("XX", "STA1", "  ", "LHZ")
	require.Equal(t, "FDSN:XX_STA1__L_H_Z", s)
}

func TestRoundTrip_NslcToSidToNslc(t *testing.T) {
	cases := []NSLC{
		{"XX", "TEST", "", "LHZ"},
		{"YY", "STA1", "00", "BHZ"},
		{"NET", "STAXX", "10", "HHN"},
	}

	for _, c := range cases {
		s := FromNSLC(c.Network, c.Station, c.Location, c.Channel)
		got, err := ToNSLC(s)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid("FDSN:XX_TEST__L_H_Z"))
	require.False(t, Valid(""))
	require.False(t, Valid("not-a-sid"))
}
