// Package app assembles stores, services, and the HTTP surface. All
// dependencies are passed in explicitly; nothing here is a singleton.
package app

import (
	"github.com/usmm07/foodcourt/internal/httpapi"
	catalogsvc "github.com/usmm07/foodcourt/internal/services/catalog"
	"github.com/usmm07/foodcourt/internal/services/carts"
	"github.com/usmm07/foodcourt/internal/services/orders"
	"github.com/usmm07/foodcourt/internal/services/users"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/internal/storage/memory"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Stores bundles the persistence interfaces. Nil fields fall back to one
// shared in-memory store, which keeps tests and local runs terse.
type Stores struct {
	Users   storage.UserStore
	Catalog storage.CatalogStore
	Carts   storage.CartStore
	Orders  storage.OrderStore
}

func (s *Stores) setDefaults() {
	var mem *memory.Store
	fallback := func() *memory.Store {
		if mem == nil {
			mem = memory.New()
		}
		return mem
	}
	if s.Users == nil {
		s.Users = fallback()
	}
	if s.Catalog == nil {
		s.Catalog = fallback()
	}
	if s.Carts == nil {
		s.Carts = fallback()
	}
	if s.Orders == nil {
		s.Orders = fallback()
	}
}

// Application holds the wired services and HTTP server.
type Application struct {
	Stores  Stores
	Users   *users.Service
	Catalog *catalogsvc.Service
	Carts   *carts.Service
	Orders  *orders.Service
	HTTP    *httpapi.Server
}

// New wires the application together.
func New(httpCfg httpapi.Config, stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}
	stores.setDefaults()

	us := users.New(stores.Users, log.Named("users"))
	cs := catalogsvc.New(stores.Catalog, log.Named("catalog"))
	crts := carts.New(stores.Carts, log.Named("carts"))
	ords := orders.New(stores.Orders, log.Named("orders"))

	return &Application{
		Stores:  stores,
		Users:   us,
		Catalog: cs,
		Carts:   crts,
		Orders:  ords,
		HTTP:    httpapi.New(httpCfg, us, cs, crts, ords, log.Named("httpapi")),
	}
}
