package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dottech/storefront/config"
	"github.com/dottech/storefront/internal/adapter/cartstore"
	"github.com/dottech/storefront/internal/adapter/catalogsource"
	"github.com/dottech/storefront/internal/adapter/httphandler"
	"github.com/dottech/storefront/internal/adapter/view"
	"github.com/dottech/storefront/internal/core/service"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	catalog    *service.CatalogService
	cartStore  *cartstore.Store
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCartStore()

	app.catalog = service.NewCatalogService(
		catalogsource.New(cfg.Catalog.Source),
	)

	cart := service.NewCart(app.cartStore)

	badge := view.NewCartBadge(cart)
	cart.Subscribe(badge)
	badge.Refresh(ctx)

	order := service.NewOrder(cart, cfg.Shop.Name, cfg.Shop.WhatsAppPhone)

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.catalog)
	httphandler.RegisterCart(mux, app.catalog, cart)
	httphandler.RegisterCartBadge(mux, badge)
	httphandler.RegisterOrders(mux, order)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(cfg.HTTPServerAddr, handler)

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCartStore() {
	const op = "App.initCartStore"

	store, err := cartstore.New(app.cfg.Cart.DBPath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.cartStore = store
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.warmCatalog()

	slog.Info("application is running")
}

// warmCatalog starts the session's single catalog fetch ahead of the
// first query. A failure is memoized, queries will answer with the
// degraded state.
func (app *App) warmCatalog() {
	const op = "App.warmCatalog"

	if _, err := app.catalog.Load(app.ctx); err != nil {
		slog.Warn("catalog is degraded", "op", op, "err", err)
	}
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.cartStore.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
