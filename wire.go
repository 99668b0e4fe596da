//go:build wireinject
// +build wireinject

package main

import (
	"github.com/beldeveloper/aoi-keeper/controller"
	"github.com/beldeveloper/aoi-keeper/service"
	"github.com/beldeveloper/aoi-keeper/service/exporter"
	"github.com/beldeveloper/aoi-keeper/service/hook"
	"github.com/beldeveloper/aoi-keeper/service/marshaller"
	"github.com/beldeveloper/aoi-keeper/service/validation"
	"github.com/google/wire"
)

func InitializeController() (controller.Service, func(), error) {
	wire.Build(
		newAOIStorage,
		exporter.NewFiles,
		wire.Bind(new(exporter.Service), new(*exporter.Files)),
		hook.NewWebhook,
		wire.Bind(new(hook.Service), new(hook.Webhook)),
		validation.NewValidation,
		wire.Bind(new(validation.Service), new(validation.Validation)),
		marshaller.NewYaml,
		service.NewContainer,
		controller.NewController,
		wire.Bind(new(controller.Service), new(controller.Controller)),
		dataDir,
		hookURL,
		mapConfig,
	)
	return nil, nil, nil
}
