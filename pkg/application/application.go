package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fieldline/fieldline/pkg/eventbus"
)

// Controller is the unit of HTTP registration. Key must be unique per
// controller; Register attaches its routes to the router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module groups services and controllers that ship together.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Pool() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}

	RegisterControllers(controllers ...Controller)
	Controllers() []Controller

	// RegisterSchema queues a module's embedded schema files, applied
	// in registration order by ApplySchemas.
	RegisterSchema(fs embed.FS)
	ApplySchemas(ctx context.Context) error
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:        opts.Pool,
		eventBus:    opts.EventBus,
		logger:      opts.Logger,
		services:    map[reflect.Type]interface{}{},
		controllers: map[string]Controller{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]interface{}
	controllers map[string]Controller
	order       []string
	schemas     []embed.FS
}

func (a *application) Pool() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.eventBus
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		a.services[serviceType] = service
	}
}

// Service looks up a registered service by the type of its zero value:
//
//	app.Service(services.ContactService{}).(*services.ContactService)
func (a *application) Service(service interface{}) interface{} {
	svc, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %s not found", reflect.TypeOf(service).String()))
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	for _, controller := range controllers {
		key := controller.Key()
		if _, exists := a.controllers[key]; !exists {
			a.order = append(a.order, key)
		}
		a.controllers[key] = controller
	}
}

func (a *application) Controllers() []Controller {
	out := make([]Controller, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.controllers[key])
	}
	return out
}

func (a *application) RegisterSchema(schemaFS embed.FS) {
	a.schemas = append(a.schemas, schemaFS)
}

// ApplySchemas executes every registered schema file against the pool.
// Statements are idempotent (CREATE TABLE IF NOT EXISTS), so running at
// every startup is safe.
func (a *application) ApplySchemas(ctx context.Context) error {
	for _, schemaFS := range a.schemas {
		var files []string
		err := fs.WalkDir(schemaFS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".sql" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk schema files: %w", err)
		}
		sort.Strings(files)

		for _, file := range files {
			sql, err := fs.ReadFile(schemaFS, file)
			if err != nil {
				return fmt.Errorf("failed to read schema %s: %w", file, err)
			}
			if _, err := a.pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("failed to apply schema %s: %w", file, err)
			}
			a.logger.WithField("schema", file).Debug("schema applied")
		}
	}
	return nil
}

// Load registers every module against the application, failing fast on
// the first registration error.
func Load(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return fmt.Errorf("failed to register module %s: %w", module.Name(), err)
		}
	}
	return nil
}
