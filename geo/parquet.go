package geo

import (
	"bytes"
	"fmt"
	"time"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/parquet-go/parquet-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// parquetFeature is the row shape of the GeoParquet document: attributes plus
// the geometry as WKB, the encoding GeoParquet prescribes for geometry columns.
type parquetFeature struct {
	Name      string    `parquet:"name"`
	CreatedAt time.Time `parquet:"created_at,timestamp(microsecond)"`
	Geometry  []byte    `parquet:"geometry"`
}

// geoMetadata is the value of the "geo" file metadata key that marks the
// geometry column as WKB-encoded polygons (GeoParquet layout).
const geoMetadata = `{"version":"1.0.0","primary_column":"geometry","columns":{"geometry":{"encoding":"WKB","geometry_types":["Polygon","MultiPolygon"]}}}`

// MarshalParquet renders the AOIs as a GeoParquet document.
func MarshalParquet(aois []model.AOI) ([]byte, error) {
	rows := make([]parquetFeature, len(aois))
	for i, a := range aois {
		body, err := wkb.Marshal(a.Geometry)
		if err != nil {
			return nil, fmt.Errorf("geo.MarshalParquet: marshal wkb #%d: %w", a.ID, err)
		}
		rows[i] = parquetFeature{
			Name:      a.Name,
			CreatedAt: a.CreatedAt.UTC(),
			Geometry:  body,
		}
	}
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[parquetFeature](&buf, parquet.KeyValueMetadata("geo", geoMetadata))
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			return nil, fmt.Errorf("geo.MarshalParquet: write rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("geo.MarshalParquet: close: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadParquetFile parses a GeoParquet file into AOIs.
// Ids are not stored in the document: the storage assigns them on import.
func ReadParquetFile(path string) ([]model.AOI, error) {
	rows, err := parquet.ReadFile[parquetFeature](path)
	if err != nil {
		return nil, fmt.Errorf("geo.ReadParquetFile: read %s: %w", path, err)
	}
	aois := make([]model.AOI, 0, len(rows))
	for i, r := range rows {
		g, err := wkb.Unmarshal(r.Geometry)
		if err != nil {
			return nil, fmt.Errorf("geo.ReadParquetFile: unmarshal wkb of row %d: %w", i, err)
		}
		switch g.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fmt.Errorf("geo.ReadParquetFile: row %d has unsupported geometry type %s", i, g.GeoJSONType())
		}
		aois = append(aois, model.AOI{
			Name:      r.Name,
			CreatedAt: r.CreatedAt.UTC(),
			Geometry:  g,
		})
	}
	return aois, nil
}
