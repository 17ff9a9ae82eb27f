package core

import (
	"embed"

	"github.com/fieldline/fieldline/modules/core/infrastructure/persistence"
	"github.com/fieldline/fieldline/modules/core/services"
	"github.com/fieldline/fieldline/pkg/application"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var SchemaFS embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(SchemaFS)

	app.RegisterServices(
		services.NewTenantService(persistence.NewTenantRepository()),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
