package hook

import (
	"context"

	"github.com/beldeveloper/aoi-keeper/model"
)

// Service defines the interface of the service that notifies an external handler about the AOI changes.
type Service interface {
	Notify(ctx context.Context, e model.HookEvent) error
}
