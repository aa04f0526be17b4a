package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewPanel_Defaults(t *testing.T) {
	p := NewPanel("Пластина 1", WeldTypeF2, []r3.Vec{{}, {X: 1}})
	require.NotEqual(t, uuid.Nil, p.ID)
	require.Equal(t, DefaultScanDuration, p.ScanDuration)
	require.Equal(t, r3.Vec{Y: 1}, p.ScanUp)
	require.NotNil(t, p.Markers)
	require.NotNil(t, p.Travel)
	require.False(t, p.Active)
	require.Equal(t, "Пластина 1 (2F)", p.Title())
}
