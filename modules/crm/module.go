package crm

import (
	"embed"

	"github.com/fieldline/fieldline/modules/crm/importing"
	"github.com/fieldline/fieldline/modules/crm/infrastructure/persistence"
	"github.com/fieldline/fieldline/modules/crm/presentation/controllers"
	"github.com/fieldline/fieldline/modules/crm/services"
	"github.com/fieldline/fieldline/pkg/application"
)

//go:embed infrastructure/persistence/schema/crm-schema.sql
var SchemaFS embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(SchemaFS)

	contacts := persistence.NewContactRepository()
	companies := persistence.NewCompanyRepository()
	manufacturers := persistence.NewManufacturerRepository()
	products := persistence.NewProductRepository()
	commissions := persistence.NewCommissionRepository()
	importLogs := persistence.NewImportLogRepository()

	executor := importing.NewExecutor(contacts, companies, manufacturers, products, commissions)

	app.RegisterServices(
		services.NewContactService(contacts, app.EventPublisher()),
		services.NewCompanyService(companies, app.EventPublisher()),
		services.NewManufacturerService(manufacturers, app.EventPublisher()),
		services.NewProductService(products, app.EventPublisher()),
		services.NewCommissionService(commissions, app.EventPublisher()),
		services.NewImportService(executor, importLogs, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewCRMAPIController(app),
		controllers.NewImportAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "crm"
}
