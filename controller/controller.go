package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/logger"
	"github.com/beldeveloper/aoi-keeper/service"
)

// SnapshotFrequency defines the frequency of the snapshot files check.
const SnapshotFrequency = time.Minute

// NewController creates a new instance of the application controller.
func NewController(services service.Container, mapCfg model.MapConfig) Controller {
	return Controller{services: services, mapCfg: mapCfg}
}

// Controller implements the application controller.
type Controller struct {
	services service.Container
	mapCfg   model.MapConfig
}

// AOIs returns the list of AOIs.
func (c Controller) AOIs(ctx context.Context) ([]model.AOI, error) {
	return c.services.AOI.FindAll(ctx)
}

// SaveAOI validates and stores a new AOI and refreshes the snapshot files.
// An AOI submitted without a name gets a sequential one.
func (c Controller) SaveAOI(ctx context.Context, f model.FormSaveAOI) (model.AOI, error) {
	f, g, err := c.services.Validation.SaveAOI(ctx, f)
	if err != nil {
		if badInput(err) {
			return model.AOI{}, err
		}
		return model.AOI{}, fmt.Errorf("controller.SaveAOI: error during validation: %w", err)
	}
	name := f.Name
	if name == "" {
		n, err := c.services.AOI.Count(ctx)
		if err != nil {
			return model.AOI{}, fmt.Errorf("controller.SaveAOI: count: %w", err)
		}
		name = fmt.Sprintf("AOI %d", n+1)
	}
	a, err := c.services.AOI.Add(ctx, model.AOI{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Geometry:  g,
	})
	if err != nil {
		return a, fmt.Errorf("controller.SaveAOI: couldn't add the AOI: %w", err)
	}
	c.refreshSnapshots(ctx)
	c.notify(ctx, model.HookEventSaved, a)
	logger.Infof("The AOI #%d is saved", a.ID)
	return a, nil
}

// DeleteAOI removes an AOI and refreshes the snapshot files.
func (c Controller) DeleteAOI(ctx context.Context, id uint64) error {
	a, err := c.services.AOI.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("controller.DeleteAOI: find by id: %w", err)
	}
	err = c.services.AOI.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("controller.DeleteAOI: delete: %w", err)
	}
	c.refreshSnapshots(ctx)
	c.notify(ctx, model.HookEventDeleted, a)
	logger.Infof("The AOI #%d is deleted", id)
	return nil
}

// Export renders the stored AOIs in the requested format.
func (c Controller) Export(ctx context.Context, format string) (model.Export, error) {
	return c.services.Exporter.Export(ctx, format)
}

// MapConfig returns the map view configuration for the UI.
func (c Controller) MapConfig(ctx context.Context) model.MapConfig {
	return c.mapCfg
}

// Healthz checks that the storage is reachable.
func (c Controller) Healthz(ctx context.Context) error {
	return c.services.AOI.Ping(ctx)
}

// SnapshotJob is a job that restores the snapshot files if they go missing.
func (c Controller) SnapshotJob(ctx context.Context) {
	t := time.NewTicker(SnapshotFrequency)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			repaired, err := c.services.Exporter.Repair(ctx)
			if err != nil {
				logger.Errorf("controller.SnapshotJob: repair: %v", err)
				break
			}
			if repaired {
				logger.Infof("The snapshot files are restored")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c Controller) refreshSnapshots(ctx context.Context) {
	err := c.services.Exporter.Refresh(ctx)
	if err != nil {
		logger.Errorf("controller.refreshSnapshots: %v", err)
	}
}

func (c Controller) notify(ctx context.Context, event string, a model.AOI) {
	n, err := c.services.AOI.Count(ctx)
	if err != nil {
		logger.Errorf("controller.notify: count: %v", err)
	}
	err = c.services.Hook.Notify(ctx, model.HookEvent{
		Event:     event,
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		Count:     n,
	})
	if err != nil {
		logger.Errorf("controller.notify: %v; event = %s", err, event)
	}
}

func badInput(err error) bool {
	return errors.Is(err, model.ErrBadInput) ||
		errors.Is(err, model.ErrEmptyGeometry) ||
		errors.Is(err, model.ErrInvalidGeometry)
}
