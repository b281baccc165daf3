package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/nstime"
)

// scenario S3 from the specification.
func TestMatch_Scenario_S3(t *testing.T) {
	win := nstime.Parse("2010-02-27T06:50:00.069539Z")
	end := nstime.Parse("2010-02-27T07:55:51.069539Z")

	list := List{
		{SIDGlob: "FDSN:XX_*", PublicationVersion: 0, Windows: []Window{{Start: nstime.Unset, End: nstime.Unset}}},
		{SIDGlob: "FDSN:YY_STA1__B_H_Z", PublicationVersion: 0, Windows: []Window{{Start: nstime.Unset, End: nstime.Unset}}},
		{SIDGlob: "FDSN:YY_STA1__L_H_Z", PublicationVersion: 2, Windows: []Window{{Start: win, End: end}}},
	}

	_, _, ok := Match(list, "FDSN:XX_S2__L_H_Z", nstime.Unset, nstime.Unset, 1)
	require.True(t, ok)

	_, _, ok = Match(list, "FDSN:YY_STA1__L_H_Z", nstime.Unset, nstime.Unset, 3)
	require.False(t, ok)
}

func TestMatch_GlobPatterns(t *testing.T) {
	list := List{
		{SIDGlob: "FDSN:XX_ST?1__B_H_?", Windows: []Window{{Start: nstime.Unset, End: nstime.Unset}}},
	}

	_, _, ok := Match(list, "FDSN:XX_ST11__B_H_Z", nstime.Unset, nstime.Unset, 0)
	require.True(t, ok)

	_, _, ok = Match(list, "FDSN:XX_STAB1__B_H_Z", nstime.Unset, nstime.Unset, 0)
	require.False(t, ok)
}

func TestMatch_TimeWindowOpenBounds(t *testing.T) {
	mid := nstime.Parse("2020-01-01T00:00:00Z")
	list := List{
		{SIDGlob: "*", Windows: []Window{{Start: nstime.Unset, End: mid}}},
	}

	before := nstime.Parse("2019-01-01T00:00:00Z")
	after := nstime.Parse("2021-01-01T00:00:00Z")

	_, _, ok := Match(list, "FDSN:XX_AA___B_H_Z", before, before, 0)
	require.True(t, ok)

	_, _, ok = Match(list, "FDSN:XX_AA___B_H_Z", after, after, 0)
	require.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	text := `
# comment
FDSN:XX_*_*_B_H_Z 2010-01-01T00:00:00Z 2010-02-01T00:00:00Z 0

FDSN:YY_STA1__L_H_Z * * 2
`
	list, err := LoadFile(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, uint8(2), list[1].PublicationVersion)
	require.True(t, list[1].Windows[0].Start == nstime.Unset)
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(strings.NewReader("onlyonefield\n"))
	require.Error(t, err)
}
