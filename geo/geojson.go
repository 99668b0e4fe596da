package geo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// timestampLayouts lists the accepted encodings of the feature timestamp property.
// GDAL-flavoured writers omit the zone; such values are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// DecodeGeometry parses a GeoJSON document that holds either a bare geometry or
// a feature wrapping one, and returns the polygonal geometry it carries.
func DecodeGeometry(data []byte) (orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: malformed geojson: %v", model.ErrBadInput, err)
	}
	var g orb.Geometry
	switch head.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed feature: %v", model.ErrBadInput, err)
		}
		g = f.Geometry
	default:
		gg, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed geometry: %v", model.ErrBadInput, err)
		}
		g = gg.Geometry()
	}
	if g == nil {
		return nil, fmt.Errorf("%w: missing geometry", model.ErrBadInput)
	}
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return g, nil
	}
	return nil, fmt.Errorf("%w: unsupported geometry type %s: draw a polygon or a rectangle", model.ErrBadInput, g.GeoJSONType())
}

// Feature renders a single AOI as a GeoJSON feature carrying the name and
// timestamp properties.
func Feature(a model.AOI) *geojson.Feature {
	f := geojson.NewFeature(a.Geometry)
	f.ID = a.ID
	f.Properties["name"] = a.Name
	f.Properties["timestamp"] = a.CreatedAt.UTC().Format(time.RFC3339Nano)
	return f
}

// MarshalCollection renders the AOIs as a GeoJSON feature collection document.
func MarshalCollection(aois []model.AOI) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, a := range aois {
		fc.Append(Feature(a))
	}
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("geo.MarshalCollection: marshal: %w", err)
	}
	return data, nil
}

// ParseCollection parses a GeoJSON feature collection document into AOIs.
// Numeric feature ids survive the import so that the links to the AOIs stay stable.
func ParseCollection(data []byte) ([]model.AOI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geo.ParseCollection: unmarshal: %w", err)
	}
	aois := make([]model.AOI, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			return nil, fmt.Errorf("geo.ParseCollection: feature %d has no geometry", i)
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fmt.Errorf("geo.ParseCollection: feature %d has unsupported geometry type %s", i, f.Geometry.GeoJSONType())
		}
		a := model.AOI{Geometry: f.Geometry}
		if id, ok := f.ID.(float64); ok && id >= 1 {
			a.ID = uint64(id)
		}
		if name, ok := f.Properties["name"].(string); ok {
			a.Name = name
		}
		if ts, ok := f.Properties["timestamp"].(string); ok {
			a.CreatedAt = parseTimestamp(ts)
		}
		aois = append(aois, a)
	}
	return aois, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
