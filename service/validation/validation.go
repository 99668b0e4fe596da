package validation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/beldeveloper/aoi-keeper/geo"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/paulmach/orb"
)

// NewValidation creates a new instance of the validation service.
func NewValidation() Validation {
	return Validation{}
}

// Validation implements the validation service.
type Validation struct {
}

// SaveAOI validates the input for the save AOI request.
// It decodes the raw GeoJSON geometry and rejects empty or invalid shapes.
func (v Validation) SaveAOI(ctx context.Context, f model.FormSaveAOI) (model.FormSaveAOI, orb.Geometry, error) {
	f.Name = strings.TrimSpace(f.Name)
	if len(f.Geometry) == 0 {
		return f, nil, model.ErrEmptyGeometry
	}
	g, err := geo.DecodeGeometry(f.Geometry)
	if err != nil {
		return f, nil, err
	}
	if isEmpty(g) {
		return f, nil, model.ErrEmptyGeometry
	}
	switch t := g.(type) {
	case orb.Polygon:
		err = validatePolygon(t)
	case orb.MultiPolygon:
		for i, p := range t {
			err = validatePolygon(p)
			if err != nil {
				err = fmt.Errorf("%w; polygon=%d", err, i+1)
				break
			}
		}
	default:
		err = fmt.Errorf("%w: unsupported geometry type %s", model.ErrBadInput, g.GeoJSONType())
	}
	if err != nil {
		return f, nil, err
	}
	return f, g, nil
}

func isEmpty(g orb.Geometry) bool {
	switch t := g.(type) {
	case orb.Polygon:
		return polygonEmpty(t)
	case orb.MultiPolygon:
		for _, p := range t {
			if !polygonEmpty(p) {
				return false
			}
		}
		return true
	}
	return true
}

func polygonEmpty(p orb.Polygon) bool {
	for _, r := range p {
		if len(r) > 0 {
			return false
		}
	}
	return true
}

func validatePolygon(p orb.Polygon) error {
	for i, r := range p {
		err := validateRing(r, i)
		if err != nil {
			return err
		}
	}
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if ringsCross(p[i], p[j]) {
				return fmt.Errorf("%w: rings %d and %d cross", model.ErrInvalidGeometry, i+1, j+1)
			}
		}
	}
	for i := 1; i < len(p); i++ {
		if !pointInRing(p[i][0], p[0]) {
			return fmt.Errorf("%w: hole %d lies outside the outer ring", model.ErrInvalidGeometry, i)
		}
	}
	return nil
}

func validateRing(r orb.Ring, idx int) error {
	if len(r) < 4 {
		return fmt.Errorf("%w: ring %d has less than 4 positions", model.ErrInvalidGeometry, idx+1)
	}
	if !r.Closed() {
		return fmt.Errorf("%w: ring %d is not closed", model.ErrInvalidGeometry, idx+1)
	}
	for _, pt := range r {
		if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsInf(pt[0], 0) || math.IsInf(pt[1], 0) {
			return fmt.Errorf("%w: ring %d contains a non-finite coordinate", model.ErrInvalidGeometry, idx+1)
		}
		if pt[0] < -180 || pt[0] > 180 || pt[1] < -90 || pt[1] > 90 {
			return fmt.Errorf("%w: ring %d is out of the WGS84 bounds", model.ErrInvalidGeometry, idx+1)
		}
	}
	for i := 1; i < len(r); i++ {
		if r[i] == r[i-1] {
			return fmt.Errorf("%w: ring %d contains repeated positions", model.ErrInvalidGeometry, idx+1)
		}
	}
	if selfIntersects(r) {
		return fmt.Errorf("%w: ring %d intersects itself", model.ErrInvalidGeometry, idx+1)
	}
	return nil
}

// selfIntersects reports whether any two non-adjacent edges of the ring touch or cross.
func selfIntersects(r orb.Ring) bool {
	n := len(r) - 1 // the closing position repeats the first one
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue // adjacent edges always share a vertex
			}
			if segmentsIntersect(r[i], r[i+1], r[j], r[j+1]) {
				return true
			}
		}
	}
	return false
}

func ringsCross(a, b orb.Ring) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(a, b, c, d orb.Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)
	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(a, b, c) {
		return true
	}
	if o2 == 0 && onSegment(a, b, d) {
		return true
	}
	if o3 == 0 && onSegment(c, d, a) {
		return true
	}
	return o4 == 0 && onSegment(c, d, b)
}

func orientation(a, b, c orb.Point) int {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func onSegment(a, b, p orb.Point) bool {
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

func pointInRing(p orb.Point, r orb.Ring) bool {
	in := false
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		if (r[i][1] > p[1]) != (r[j][1] > p[1]) &&
			p[0] < (r[j][0]-r[i][0])*(p[1]-r[i][1])/(r[j][1]-r[i][1])+r[i][0] {
			in = !in
		}
	}
	return in
}
