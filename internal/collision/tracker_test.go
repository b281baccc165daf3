package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/errs"
)

func TestNewTracker(t *testing.T) {
	tr := NewTracker()
	require.Equal(t, 0, tr.Count())
	require.False(t, tr.HasCollision())
	require.Empty(t, tr.SIDs())
}

func TestTrackSID_Success(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.TrackSID("FDSN:XX_AA___B_H_Z", 0x1))
	require.NoError(t, tr.TrackSID("FDSN:XX_BB___B_H_Z", 0x2))
	require.Equal(t, 2, tr.Count())
	require.False(t, tr.HasCollision())
	require.Equal(t, []string{"FDSN:XX_AA___B_H_Z", "FDSN:XX_BB___B_H_Z"}, tr.SIDs())
}

func TestTrackSID_EmptySID(t *testing.T) {
	tr := NewTracker()

	err := tr.TrackSID("", 0x1)
	require.ErrorIs(t, err, errs.ErrMalformedSid)
	require.Equal(t, 0, tr.Count())
}

func TestTrackSID_Collision(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.TrackSID("FDSN:XX_AA___B_H_Z", 0x1))
	require.False(t, tr.HasCollision())

	require.NoError(t, tr.TrackSID("FDSN:XX_BB___B_H_Z", 0x1))
	require.True(t, tr.HasCollision())
	require.Equal(t, 2, tr.Count())
}

func TestTrackSID_Duplicate(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.TrackSID("FDSN:XX_AA___B_H_Z", 0x1))
	err := tr.TrackSID("FDSN:XX_AA___B_H_Z", 0x1)
	require.ErrorIs(t, err, errs.ErrSidAlreadyTracked)
	require.False(t, tr.HasCollision())
	require.Equal(t, 1, tr.Count())
}

func TestTrackHash(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.TrackHash(0x42))
	err := tr.TrackHash(0x42)
	require.ErrorIs(t, err, errs.ErrHashCollision)
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	_ = tr.TrackSID("a", 1)
	_ = tr.TrackSID("b", 1)
	require.True(t, tr.HasCollision())

	tr.Reset()
	require.Equal(t, 0, tr.Count())
	require.False(t, tr.HasCollision())

	require.NoError(t, tr.TrackSID("c", 2))
	require.Equal(t, 1, tr.Count())
}
