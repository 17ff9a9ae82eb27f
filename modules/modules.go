package modules

import (
	"github.com/fieldline/fieldline/modules/core"
	"github.com/fieldline/fieldline/modules/crm"
	"github.com/fieldline/fieldline/pkg/application"
)

// BuiltInModules is the registration order: core first, it owns the
// tenants table everything else references.
var BuiltInModules = []application.Module{
	core.NewModule(),
	crm.NewModule(),
}

func Load(app application.Application) error {
	return application.Load(app, BuiltInModules...)
}
