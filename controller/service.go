package controller

import (
	"context"

	"github.com/beldeveloper/aoi-keeper/model"
)

// Service defines the controller interface.
type Service interface {
	AOIs(context.Context) ([]model.AOI, error)
	SaveAOI(context.Context, model.FormSaveAOI) (model.AOI, error)
	DeleteAOI(context.Context, uint64) error
	Export(context.Context, string) (model.Export, error)
	MapConfig(context.Context) model.MapConfig
	Healthz(context.Context) error
	SnapshotJob(context.Context)
}
