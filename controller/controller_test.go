package controller_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/beldeveloper/aoi-keeper/controller"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/service"
	"github.com/beldeveloper/aoi-keeper/service/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const polygonDoc = `{"type":"Polygon","coordinates":[[[13.3,52.4],[13.6,52.4],[13.6,52.6],[13.3,52.6],[13.3,52.4]]]}`

type fakeAOI struct {
	aois   []model.AOI
	nextID uint64
}

func (f *fakeAOI) FindAll(ctx context.Context) ([]model.AOI, error) { return f.aois, nil }

func (f *fakeAOI) FindByID(ctx context.Context, id uint64) (model.AOI, error) {
	for _, a := range f.aois {
		if a.ID == id {
			return a, nil
		}
	}
	return model.AOI{}, model.ErrNotFound
}

func (f *fakeAOI) Count(ctx context.Context) (int, error) { return len(f.aois), nil }

func (f *fakeAOI) Add(ctx context.Context, a model.AOI) (model.AOI, error) {
	f.nextID++
	a.ID = f.nextID
	f.aois = append(f.aois, a)
	return a, nil
}

func (f *fakeAOI) Delete(ctx context.Context, id uint64) error {
	for i, a := range f.aois {
		if a.ID == id {
			f.aois = append(f.aois[:i], f.aois[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeAOI) ExportGpkg(ctx context.Context) ([]byte, error) { return []byte("gpkg"), nil }

func (f *fakeAOI) Ping(ctx context.Context) error { return nil }

type fakeExporter struct {
	refreshed int
	export    model.Export
}

func (f *fakeExporter) Refresh(ctx context.Context) error { f.refreshed++; return nil }

func (f *fakeExporter) Export(ctx context.Context, format string) (model.Export, error) {
	return f.export, nil
}

func (f *fakeExporter) Repair(ctx context.Context) (bool, error) { return false, nil }

type fakeHook struct {
	events []model.HookEvent
}

func (f *fakeHook) Notify(ctx context.Context, e model.HookEvent) error {
	f.events = append(f.events, e)
	return nil
}

func newTestController(storage *fakeAOI) (controller.Controller, *fakeExporter, *fakeHook) {
	e := &fakeExporter{}
	h := &fakeHook{}
	c := controller.NewController(
		service.NewContainer(storage, e, h, validation.NewValidation()),
		model.DefaultMapConfig(),
	)
	return c, e, h
}

func TestSaveAOI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns a sequential name", func(t *testing.T) {
		t.Parallel()
		storage := &fakeAOI{
			aois:   []model.AOI{{ID: 1, Name: "AOI 1"}, {ID: 2, Name: "AOI 2"}},
			nextID: 2,
		}
		c, e, h := newTestController(storage)

		a, err := c.SaveAOI(ctx, model.FormSaveAOI{Geometry: json.RawMessage(polygonDoc)})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), a.ID)
		assert.Equal(t, "AOI 3", a.Name)
		assert.False(t, a.CreatedAt.IsZero())
		assert.Equal(t, time.UTC, a.CreatedAt.Location())
		assert.Equal(t, 1, e.refreshed)
		require.Len(t, h.events, 1)
		assert.Equal(t, model.HookEventSaved, h.events[0].Event)
		assert.Equal(t, 3, h.events[0].Count)
	})

	t.Run("keeps the given name", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestController(&fakeAOI{})
		a, err := c.SaveAOI(ctx, model.FormSaveAOI{Name: "  Berlin  ", Geometry: json.RawMessage(polygonDoc)})
		require.NoError(t, err)
		assert.Equal(t, "Berlin", a.Name)
	})

	t.Run("rejects an empty geometry", func(t *testing.T) {
		t.Parallel()
		storage := &fakeAOI{}
		c, e, _ := newTestController(storage)
		_, err := c.SaveAOI(ctx, model.FormSaveAOI{Name: "empty"})
		assert.ErrorIs(t, err, model.ErrEmptyGeometry)
		assert.Empty(t, storage.aois)
		assert.Zero(t, e.refreshed)
	})

	t.Run("rejects an invalid geometry", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestController(&fakeAOI{})
		doc := `{"type":"Polygon","coordinates":[[[0,0],[2,2],[2,0],[0,2],[0,0]]]}`
		_, err := c.SaveAOI(ctx, model.FormSaveAOI{Geometry: json.RawMessage(doc)})
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	})
}

func TestDeleteAOI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes and notifies", func(t *testing.T) {
		t.Parallel()
		storage := &fakeAOI{aois: []model.AOI{{ID: 5, Name: "Harbor"}}, nextID: 5}
		c, e, h := newTestController(storage)

		require.NoError(t, c.DeleteAOI(ctx, 5))
		assert.Empty(t, storage.aois)
		assert.Equal(t, 1, e.refreshed)
		require.Len(t, h.events, 1)
		assert.Equal(t, model.HookEventDeleted, h.events[0].Event)
		assert.Equal(t, "Harbor", h.events[0].Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		c, e, _ := newTestController(&fakeAOI{})
		assert.ErrorIs(t, c.DeleteAOI(ctx, 42), model.ErrNotFound)
		assert.Zero(t, e.refreshed)
	})
}

func TestExport(t *testing.T) {
	t.Parallel()
	c, e, _ := newTestController(&fakeAOI{})
	e.export = model.Export{Format: model.FormatGeoJSON, Filename: "aois.geojson", MIME: model.MIMEGeoJSON, Data: []byte("{}")}
	res, err := c.Export(context.Background(), model.FormatGeoJSON)
	require.NoError(t, err)
	assert.Equal(t, model.MIMEGeoJSON, res.MIME)
}

func TestMapConfig(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(&fakeAOI{})
	cfg := c.MapConfig(context.Background())
	assert.Equal(t, model.DefaultMapConfig(), cfg)
}
