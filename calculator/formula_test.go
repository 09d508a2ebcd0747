package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeGrid(t *testing.T) {
	grid := timeGrid(30, 100)
	assert.Len(t, grid, 100)
	assert.Equal(t, 0.0, grid[0])
	assert.Equal(t, 30.0, grid[99])
	assert.InDelta(t, 30.0/99, grid[1], 1e-12)
}

func TestTemperatureRate(t *testing.T) {
	assert.InDelta(t, 0.48, temperatureRate(0.08, 600), 1e-12)
	assert.InDelta(t, 0.1, temperatureRate(0.05, 200), 1e-12)
}

func TestSaturation(t *testing.T) {
	f := saturation(500, 0.05)
	assert.Equal(t, 0.0, f(0))
	assert.InDelta(t, 500*(1-0.22313016014842982), f(30), 1e-9)
}
