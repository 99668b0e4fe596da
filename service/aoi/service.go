package aoi

import (
	"context"

	"github.com/beldeveloper/aoi-keeper/model"
)

// Service defines the interface of the AOI storage service.
type Service interface {
	FindAll(ctx context.Context) ([]model.AOI, error)
	FindByID(ctx context.Context, id uint64) (model.AOI, error)
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, a model.AOI) (model.AOI, error)
	Delete(ctx context.Context, id uint64) error
	ExportGpkg(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}
