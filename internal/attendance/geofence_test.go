package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Zero(t, DistanceMeters(-6.2, 106.8, -6.2, 106.8))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := DistanceMeters(0, 0, 1, 0)
		// About 111.2 km on a sphere of this radius.
		assert.InDelta(t, 111195, d, 100)
	})

	t.Run("short hop", func(t *testing.T) {
		// Roughly 157 m apart.
		d := DistanceMeters(-6.2000, 106.8000, -6.2010, 106.8010)
		assert.InDelta(t, 157, d, 5)
	})
}

func TestWithinRadius(t *testing.T) {
	center := struct{ lat, lon float64 }{-6.2, 106.8}

	assert.True(t, WithinRadius(center.lat, center.lon, center.lat, center.lon, 0))

	d := DistanceMeters(center.lat, center.lon, -6.2010, 106.8010)
	assert.True(t, WithinRadius(-6.2010, 106.8010, center.lat, center.lon, d))
	assert.False(t, WithinRadius(-6.2010, 106.8010, center.lat, center.lon, d-1))
}
