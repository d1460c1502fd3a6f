// Package orderbump implements the pre-purchase offer feature: bumps
// shown at checkout, each stored as one entity in the shared table.
package orderbump

import (
	"context"

	"gorm.io/gorm"

	"storeboost/internal/di"
	"storeboost/internal/entity"
	"storeboost/internal/options"
	"storeboost/internal/pkg/logger"
	"storeboost/internal/repository/contract"
	"storeboost/internal/repository/implementation"
	"storeboost/internal/repository/scope"
	"storeboost/internal/settings"
	"storeboost/pkg/feature"
)

const (
	FeatureId      = "order_bump"
	EntityTypeBump = "bump"

	// RepositoryKey is where Init publishes the bump repository for
	// collaborators that resolve it through the container.
	RepositoryKey = "repository.order_bump.bump"
)

type Feature struct {
	feature.Base
	db        *gorm.DB
	container *di.Container
	logger    logger.ILogger
}

func New(db *gorm.DB, store options.Store, container *di.Container, log logger.ILogger) *Feature {
	return &Feature{
		Base: feature.NewBase(feature.Definition{
			Id:          FeatureId,
			Name:        "Order Bumps",
			Description: "One-click add-on offers shown during checkout",
			Category:    "conversion",
			Icon:        "cart-plus",
			Priority:    10,
			EntityTypes: []string{EntityTypeBump},
		}, settings.Map{
			"enabled":   false,
			"position":  "below_cart",
			"max_bumps": 3,
		}, store),
		db:        db,
		container: container,
		logger:    log,
	}
}

// Repository returns the bump collection, scoped so no other feature's
// rows are reachable.
func (f *Feature) Repository() contract.EntityRepository {
	return implementation.NewEntityRepository(f.db, scope.New(FeatureId, EntityTypeBump))
}

// BumpsForPosition returns active bumps configured for a checkout
// position.
func (f *Feature) BumpsForPosition(ctx context.Context, position string) ([]*entity.Entity, error) {
	return f.Repository().FindBySetting(ctx, "position", position)
}

// Init wires the feature's runtime: the bump repository becomes
// resolvable through the container.
func (f *Feature) Init(ctx context.Context) error {
	repo := f.Repository()
	f.container.Instance(RepositoryKey, repo)

	active, err := repo.Count(ctx, string(entity.StatusActive))
	if err != nil {
		return err
	}
	f.logger.Info(FeatureId, "Feature initialized", map[string]interface{}{
		"active_bumps": active,
	})
	return nil
}
