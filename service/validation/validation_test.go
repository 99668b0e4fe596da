package validation_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/service/validation"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveForm(name, geometry string) model.FormSaveAOI {
	return model.FormSaveAOI{Name: name, Geometry: json.RawMessage(geometry)}
}

func TestSaveAOI(t *testing.T) {
	t.Parallel()
	v := validation.NewValidation()
	ctx := context.Background()

	t.Run("valid polygon", func(t *testing.T) {
		t.Parallel()
		f, g, err := v.SaveAOI(ctx, saveForm("  Berlin  ", `{"type":"Polygon","coordinates":[[[13.3,52.4],[13.6,52.4],[13.6,52.6],[13.3,52.6],[13.3,52.4]]]}`))
		require.NoError(t, err)
		assert.Equal(t, "Berlin", f.Name)
		assert.Equal(t, orb.Polygon{{{13.3, 52.4}, {13.6, 52.4}, {13.6, 52.6}, {13.3, 52.6}, {13.3, 52.4}}}, g)
	})

	t.Run("feature wrapper", func(t *testing.T) {
		t.Parallel()
		_, g, err := v.SaveAOI(ctx, saveForm("", `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}`))
		require.NoError(t, err)
		assert.Equal(t, "Polygon", g.GeoJSONType())
	})

	t.Run("valid multi polygon", func(t *testing.T) {
		t.Parallel()
		_, g, err := v.SaveAOI(ctx, saveForm("two islands", `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,6],[5,5]]]]}`))
		require.NoError(t, err)
		assert.Equal(t, "MultiPolygon", g.GeoJSONType())
	})

	t.Run("polygon with hole", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("donut", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]],[[1,1],[2,1],[2,2],[1,2],[1,1]]]}`))
		assert.NoError(t, err)
	})

	t.Run("missing geometry", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, model.FormSaveAOI{Name: "nothing drawn"})
		assert.ErrorIs(t, err, model.ErrEmptyGeometry)
	})

	t.Run("empty coordinates", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[]}`))
		assert.ErrorIs(t, err, model.ErrEmptyGeometry)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon"`))
		assert.ErrorIs(t, err, model.ErrBadInput)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Point","coordinates":[13.4,52.5]}`))
		assert.ErrorIs(t, err, model.ErrBadInput)
	})

	t.Run("too few positions", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("open ring", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("self intersection", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("bowtie", `{"type":"Polygon","coordinates":[[[0,0],[2,2],[2,0],[0,2],[0,0]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("repeated positions", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[0,0],[0,0],[1,0],[1,1],[0,0]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("out of bounds", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[190,0],[191,0],[191,1],[190,1],[190,0]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("hole outside the shell", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]],[[10,10],[11,10],[11,11],[10,11],[10,10]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("hole crossing the shell", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]],[[2,2],[6,2],[6,3],[2,3],[2,2]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})

	t.Run("invalid multi polygon member", func(t *testing.T) {
		t.Parallel()
		_, _, err := v.SaveAOI(ctx, saveForm("", `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,1],[0,0]]],[[[0,0],[2,2],[2,0],[0,2],[0,0]]]]}`))
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})
}
