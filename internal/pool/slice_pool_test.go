package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt32Slice(t *testing.T) {
	s, cleanup := GetInt32Slice(5)
	require.Len(t, s, 5)
	s[0] = 42
	cleanup()

	s2, cleanup2 := GetInt32Slice(3)
	require.Len(t, s2, 3)
	cleanup2()
}

func TestGetFloat32Slice(t *testing.T) {
	s, cleanup := GetFloat32Slice(10)
	require.Len(t, s, 10)
	cleanup()
}

func TestGetFloat64Slice(t *testing.T) {
	s, cleanup := GetFloat64Slice(10)
	require.Len(t, s, 10)
	cleanup()
}
