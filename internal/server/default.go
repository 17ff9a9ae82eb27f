package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fieldline/fieldline/pkg/application"
	"github.com/fieldline/fieldline/pkg/configuration"
	"github.com/fieldline/fieldline/pkg/middleware"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the HTTP server: the shared middleware chain and
// every controller registered by the loaded modules. No transaction is
// opened per request; services that need one open it themselves.
func Default(options *DefaultOptions) (*http.Server, error) {
	router := mux.NewRouter()
	router.Use(
		middleware.WithLogger(options.Logger),
		middleware.ProvidePool(options.Pool),
		middleware.RequireTenant(options.Application),
	)

	for _, controller := range options.Application.Controllers() {
		controller.Register(router)
	}

	return &http.Server{
		Addr:         options.Configuration.SocketAddress,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}, nil
}
