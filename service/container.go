package service

import (
	"github.com/beldeveloper/aoi-keeper/service/aoi"
	"github.com/beldeveloper/aoi-keeper/service/exporter"
	"github.com/beldeveloper/aoi-keeper/service/hook"
	"github.com/beldeveloper/aoi-keeper/service/validation"
)

// Container keeps all services in one place.
type Container struct {
	AOI        aoi.Service
	Exporter   exporter.Service
	Hook       hook.Service
	Validation validation.Service
}

// NewContainer creates a new instance of the services container.
func NewContainer(a aoi.Service, e exporter.Service, h hook.Service, v validation.Service) Container {
	return Container{
		AOI:        a,
		Exporter:   e,
		Hook:       h,
		Validation: v,
	}
}
