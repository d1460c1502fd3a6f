// Package bootstrap performs the service wiring: every built-in feature
// is registered as a singleton factory in the container, the registry is
// itself a container-managed singleton built from those factories, and
// Boot drives the addon-hook + enabled-feature init lifecycle.
package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storeboost/internal/config"
	"storeboost/internal/controller"
	"storeboost/internal/di"
	"storeboost/internal/options"
	"storeboost/internal/pkg/logger"
	"storeboost/internal/service"
	"storeboost/pkg/feature"
	"storeboost/pkg/features/bundle"
	"storeboost/pkg/features/orderbump"
	"storeboost/pkg/features/recommendation"
	pktNats "storeboost/pkg/nats"
)

// Container keys for the core services.
const (
	KeyConfig       = "config"
	KeyDB           = "db"
	KeyLogger       = "logger"
	KeyOptionsStore = "options.store"
	KeyPublisher    = "publisher"
	KeyRegistry     = "feature.registry"
)

// builtinFeatureKeys lists every built-in feature factory, in registry
// display order.
var builtinFeatureKeys = []string{
	"feature." + orderbump.FeatureId,
	"feature." + bundle.FeatureId,
	"feature." + recommendation.FeatureId,
}

// App owns the process-local wiring. One App per process; the container
// inside must never be shared across processes serving different tenants.
type App struct {
	Container *di.Container
	Registry  *feature.Registry
	Logger    logger.ILogger

	FeatureController controller.IFeatureController
	EntityController  controller.IEntityController
	AdminController   controller.IAdminController

	cfg        *config.Config
	natsPub    *pktNats.Publisher
	addonHooks []feature.AddonHook
	booted     bool
}

// New registers factories; nothing but infrastructure is constructed
// here. Feature instances are built lazily when the registry resolves.
func New(db *gorm.DB, cfg *config.Config) *App {
	c := di.New()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	c.Instance(KeyConfig, cfg)
	c.Instance(KeyDB, db)
	c.Instance(KeyLogger, sysLogger)

	// Option store, per configured backend.
	var store options.Store
	if cfg.Options.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.Options.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Options.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		store = options.NewRedisStore(rdb)
	} else {
		store = options.NewGormStore(db)
	}
	if cfg.Options.CacheTTL > 0 {
		store = options.NewCachedStore(store, time.Duration(cfg.Options.CacheTTL)*time.Second)
	}
	c.Instance(KeyOptionsStore, store)

	// Event bus: in-process always, NATS when configured.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisher := service.NewPublisherService(pubSub, natsPub, sysLogger)
	c.Instance(KeyPublisher, publisher)

	// Built-in feature factories. Deferred closures keep boot cheap: a
	// feature pays construction cost only when something resolves it.
	c.Register("feature."+orderbump.FeatureId, func(c *di.Container) any {
		return orderbump.New(db, store, c, sysLogger)
	}, true)
	c.Register("feature."+bundle.FeatureId, func(c *di.Container) any {
		return bundle.New(db, store, c, sysLogger)
	}, true)
	c.Register("feature."+recommendation.FeatureId, func(c *di.Container) any {
		return recommendation.New(db, store, c, sysLogger)
	}, true)

	c.Register(KeyRegistry, func(c *di.Container) any {
		r := feature.NewRegistry()
		for _, key := range builtinFeatureKeys {
			r.Register(c.MustResolve(key).(feature.Feature))
		}
		return r
	}, true)

	return &App{
		Container: c,
		Logger:    sysLogger,
		cfg:       cfg,
		natsPub:   natsPub,
	}
}

// RegisterAddonHook queues an extension hook that runs during Boot,
// before the enabled-feature init pass. External collaborators use it to
// contribute features of their own.
func (a *App) RegisterAddonHook(fn feature.AddonHook) {
	a.addonHooks = append(a.addonHooks, fn)
}

// Boot resolves the registry, fires the addon hook, runs Init on every
// enabled feature and wires the HTTP controllers. One-shot per process.
func (a *App) Boot(ctx context.Context) error {
	if a.booted {
		return nil
	}
	a.booted = true

	registry := a.Container.MustResolve(KeyRegistry).(*feature.Registry)
	a.Registry = registry

	for _, fn := range a.addonHooks {
		registry.OnAddonHook(fn)
	}
	registry.FireAddonHook()

	for _, f := range registry.All() {
		if !f.IsEnabled(ctx) {
			continue
		}
		if err := f.Init(ctx); err != nil {
			// One broken feature must not take the process down.
			a.Logger.Error("bootstrap", "Feature init failed", map[string]interface{}{
				"feature_id": f.Id(),
				"error":      err.Error(),
			})
		}
	}

	db := a.Container.MustResolve(KeyDB).(*gorm.DB)
	publisher := a.Container.MustResolve(KeyPublisher).(service.IPublisherService)

	featureService := service.NewFeatureService(registry, publisher, a.Logger)
	entityService := service.NewEntityService(db, registry, publisher, a.Logger)
	adminService := service.NewAdminService(a.Logger)

	a.FeatureController = controller.NewFeatureController(featureService)
	a.EntityController = controller.NewEntityController(entityService)
	a.AdminController = controller.NewAdminController(adminService)

	a.Logger.Info("bootstrap", "Application booted", map[string]interface{}{
		"features": len(registry.All()),
	})
	return nil
}

// Close releases external connections.
func (a *App) Close() {
	if a.natsPub != nil {
		a.natsPub.Close()
	}
	_ = a.Logger.Sync()
}
