// Package bundle implements the product bundle feature: curated product
// groups sold at a combined discount.
package bundle

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
	FeatureId        = "product_bundles"
	EntityTypeBundle = "bundle"

	RepositoryKey = "repository.product_bundles.bundle"
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
			Name:        "Product Bundles",
			Description: "Curated product groups with a combined discount",
			Category:    "merchandising",
			Icon:        "boxes",
			Priority:    20,
			EntityTypes: []string{EntityTypeBundle},
		}, settings.Map{
			"enabled":          false,
			"discount_type":    "percentage",
			"show_on_product":  true,
			"default_discount": 10,
		}, store),
		db:        db,
		container: container,
		logger:    log,
	}
}

func (f *Feature) Repository() contract.EntityRepository {
	return implementation.NewEntityRepository(f.db, scope.New(FeatureId, EntityTypeBundle))
}

// ActiveBundles returns the bundles currently offered, best priority
// first.
func (f *Feature) ActiveBundles(ctx context.Context) ([]*entity.Entity, error) {
	return f.Repository().GetAll(ctx, contract.ListOptions{
		Status:  string(entity.StatusActive),
		OrderBy: "priority",
	})
}

func (f *Feature) Init(ctx context.Context) error {
	repo := f.Repository()
	f.container.Instance(RepositoryKey, repo)

	active, err := repo.Count(ctx, string(entity.StatusActive))
	if err != nil {
		return err
	}
	f.logger.Info(FeatureId, "Feature initialized", map[string]interface{}{
		"active_bundles": active,
	})
	return nil
}
