package geo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beldeveloper/aoi-keeper/geo"
	"github.com/beldeveloper/aoi-keeper/model"
)

func TestParquetRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2023, 8, 5, 12, 30, 45, 123456000, time.UTC)
	aois := []model.AOI{
		{ID: 1, Name: "AOI 1", CreatedAt: created, Geometry: testPolygon()},
		{ID: 2, Name: "Harbor", CreatedAt: created.Add(time.Minute), Geometry: testPolygon()},
	}

	data, err := geo.MarshalParquet(aois)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	path := filepath.Join(t.TempDir(), "aois.parquet")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	parsed, err := geo.ReadParquetFile(path)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "AOI 1", parsed[0].Name)
	assert.Equal(t, "Harbor", parsed[1].Name)
	// the document keeps microsecond precision
	assert.Equal(t, created.Truncate(time.Microsecond), parsed[0].CreatedAt)
	assert.Equal(t, orb.Geometry(testPolygon()), parsed[0].Geometry)
}

func TestParquetEmpty(t *testing.T) {
	t.Parallel()

	data, err := geo.MarshalParquet(nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	path := filepath.Join(t.TempDir(), "aois.parquet")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	parsed, err := geo.ReadParquetFile(path)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestReadParquetFileMissing(t *testing.T) {
	t.Parallel()

	_, err := geo.ReadParquetFile(filepath.Join(t.TempDir(), "absent.parquet"))
	assert.Error(t, err)
}
