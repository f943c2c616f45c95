package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartfakestore "github.com/dwikikusuma/storefront/internal/cart/infra/fakestore"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogfakestore "github.com/dwikikusuma/storefront/internal/catalog/infra/fakestore"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/mealdb"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/infra/memory"

	sessionapp "github.com/dwikikusuma/storefront/internal/session/app"
	sessiondomain "github.com/dwikikusuma/storefront/internal/session/domain"
	sessionfakestore "github.com/dwikikusuma/storefront/internal/session/infra/fakestore"
	"github.com/dwikikusuma/storefront/internal/session/infra/localauth"

	"github.com/dwikikusuma/storefront/internal/httpapi"
	"github.com/dwikikusuma/storefront/internal/store"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)
	st := store.New(store.WithLogger(log), store.WithMetrics(m))

	// Upstreams
	commerce := httpjson.New(cfg.CommerceBaseURL,
		httpjson.WithTimeout(cfg.RequestTimeout),
		httpjson.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
	)
	recipes := httpjson.New(cfg.RecipeBaseURL,
		httpjson.WithTimeout(cfg.RequestTimeout),
		httpjson.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
	)
	products := catalogfakestore.NewProductClient(commerce)

	// Catalog
	catalogSvc := catalogapp.NewService(st.Catalog(), products, mealdb.NewRecipeClient(recipes),
		catalogapp.WithLogger(log),
		catalogapp.WithMetrics(m),
		catalogapp.WithTimeout(cfg.RequestTimeout),
	)

	// Cart
	cartSvc := cartapp.NewService(st.Cart(), cartfakestore.NewCartClient(commerce), products,
		cartapp.WithLogger(log),
		cartapp.WithMetrics(m),
		cartapp.WithTimeout(cfg.RequestTimeout),
		cartapp.WithMaxConcurrent(cfg.CheckoutConcurrency),
	)

	// Session
	sessionSvc := sessionapp.NewService(st.Session(), sessionfakestore.NewAuthClient(commerce), localauth.NewMockRegistrar(),
		sessionapp.WithLogger(log),
		sessionapp.WithMetrics(m),
		sessionapp.WithTimeout(cfg.RequestTimeout),
	)

	// Checkout (adapters)
	orderSvc := orderapp.NewService(memory.NewOrderRepo())
	cartReader := checkoutadapter.NewCartStoreReader(st.Cart())
	catalogReader := checkoutadapter.NewCatalogSourceReader(products)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, orderSvc, cartSvc,
		cfg.DeliveryFee, cfg.CheckoutConcurrency, checkoutapp.WithLogger(log))

	// a fresh session lands on the product list
	unsubscribe := st.OnAuthenticated(func(s sessiondomain.State) {
		go func() {
			if err := catalogSvc.FetchAllProducts(ctx); err != nil {
				log.Warn("catalog reload after sign-in failed", slog.Any("err", err))
			}
		}()
	})
	defer unsubscribe()

	var ready atomic.Bool
	go func() {
		defer ready.Store(true)
		if err := catalogSvc.FetchAllProducts(ctx); err != nil {
			log.Warn("initial catalog load failed", slog.Any("err", err))
			return
		}
		log.Info("catalog loaded", slog.Int("items", len(st.State().Catalog.Items)))
	}()

	router := httpapi.NewRouter(httpapi.Deps{
		Store:         st,
		Catalog:       catalogSvc,
		Cart:          cartSvc,
		Session:       sessionSvc,
		Checkout:      checkoutSvc,
		Orders:        orderSvc,
		DeliveryFee:   cfg.DeliveryFee,
		DefaultUserID: cfg.DefaultUserID,
		Gatherer:      prometheus.DefaultGatherer,
		Ready:         ready.Load,
		Log:           log,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := shutdown.ServeHTTP(ctx, log, server, 10*time.Second); err != nil {
		log.Error("http server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
