package validation

import (
	"context"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/paulmach/orb"
)

// Service defines the interface of the validation service.
type Service interface {
	SaveAOI(ctx context.Context, f model.FormSaveAOI) (model.FormSaveAOI, orb.Geometry, error)
}
