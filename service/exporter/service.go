package exporter

import (
	"context"

	"github.com/beldeveloper/aoi-keeper/model"
)

// Service defines the interface of the service that is in charge of the snapshot files and downloads.
type Service interface {
	Refresh(ctx context.Context) error
	Export(ctx context.Context, format string) (model.Export, error)
	Repair(ctx context.Context) (bool, error)
}
