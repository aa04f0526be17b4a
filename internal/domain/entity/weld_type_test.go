package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeldTypeDisplayName(t *testing.T) {
	require.Equal(t, "1F", WeldTypeF1.DisplayName())
	require.Equal(t, "6G", WeldTypeG6.DisplayName())
	require.Equal(t, "None", WeldTypeNone.DisplayName())
	require.Equal(t, "None", WeldType(99).DisplayName())
}

func TestParseWeldType(t *testing.T) {
	wt, err := ParseWeldType("2g")
	require.NoError(t, err)
	require.Equal(t, WeldTypeG2, wt)

	wt, err = ParseWeldType("F3")
	require.NoError(t, err)
	require.Equal(t, WeldTypeF3, wt)

	wt, err = ParseWeldType("")
	require.NoError(t, err)
	require.Equal(t, WeldTypeNone, wt)

	_, err = ParseWeldType("7X")
	require.Error(t, err)
}
