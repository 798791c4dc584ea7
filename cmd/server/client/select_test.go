package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelectRequest(t *testing.T) {
	req, err := buildSelectRequest(
		[]string{"T4_OFF_SHIELD", "T4_SHOES_PLATE_HELL"},
		nil,
		[]float64{-1200, 800},
		[]float64{120},
	)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4}, req.MinTiers)
	assert.Equal(t, []float64{-1200, 800}, req.TargetPowers)
	assert.Equal(t, []float64{120, 120}, req.BonusPoints)
	assert.Empty(t, req.Slots)
}

func TestBuildSelectRequestErrors(t *testing.T) {
	_, err := buildSelectRequest(nil, nil, nil, nil)
	require.Error(t, err)

	_, err = buildSelectRequest([]string{"a", "b", "c"}, []int{4, 5}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min-tier has 2 values for 3 items")
}
