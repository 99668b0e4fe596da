package geo_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beldeveloper/aoi-keeper/geo"
)

func testPolygon() orb.Polygon {
	return orb.Polygon{
		{{13.3, 52.4}, {13.6, 52.4}, {13.6, 52.6}, {13.3, 52.6}, {13.3, 52.4}},
	}
}

func TestGpkgRoundTrip(t *testing.T) {
	t.Parallel()

	p := testPolygon()
	data, err := geo.EncodeGpkg(p)
	require.NoError(t, err)

	g, err := geo.DecodeGpkg(data)
	require.NoError(t, err)
	assert.Equal(t, orb.Geometry(p), g)
}

func TestGpkgRoundTripMultiPolygon(t *testing.T) {
	t.Parallel()

	mp := orb.MultiPolygon{
		testPolygon(),
		{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
	}
	data, err := geo.EncodeGpkg(mp)
	require.NoError(t, err)

	g, err := geo.DecodeGpkg(data)
	require.NoError(t, err)
	assert.Equal(t, orb.Geometry(mp), g)
}

func TestGpkgHeader(t *testing.T) {
	t.Parallel()

	data, err := geo.EncodeGpkg(testPolygon())
	require.NoError(t, err)
	require.Greater(t, len(data), 40)

	assert.Equal(t, byte('G'), data[0])
	assert.Equal(t, byte('P'), data[1])
	assert.Equal(t, byte(0), data[2])
	// little-endian with a 2D envelope
	assert.Equal(t, byte(0x03), data[3])
	// srs id 4326
	assert.Equal(t, []byte{0xe6, 0x10, 0x00, 0x00}, data[4:8])
}

func TestGpkgEncodeNil(t *testing.T) {
	t.Parallel()

	_, err := geo.EncodeGpkg(nil)
	assert.Error(t, err)
}

func TestGpkgDecodeErrors(t *testing.T) {
	t.Parallel()

	valid, err := geo.EncodeGpkg(testPolygon())
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := geo.DecodeGpkg(valid[:5])
		assert.ErrorContains(t, err, "truncated header")
	})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[0] = 'X'
		_, err := geo.DecodeGpkg(data)
		assert.ErrorContains(t, err, "not a geopackage geometry")
	})

	t.Run("bad version", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[2] = 9
		_, err := geo.DecodeGpkg(data)
		assert.ErrorContains(t, err, "unsupported version")
	})

	t.Run("invalid envelope indicator", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[3] = 0x0b // indicator 5
		_, err := geo.DecodeGpkg(data)
		assert.ErrorContains(t, err, "invalid envelope indicator")
	})

	t.Run("truncated envelope", func(t *testing.T) {
		_, err := geo.DecodeGpkg(valid[:20])
		assert.ErrorContains(t, err, "truncated envelope")
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := geo.DecodeGpkg(valid[:45])
		assert.Error(t, err)
	})
}
