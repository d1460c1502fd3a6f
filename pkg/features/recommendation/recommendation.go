// Package recommendation implements rule-driven product recommendations:
// each rule entity maps a trigger product to suggested companions.
package recommendation

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
	FeatureId      = "recommendations"
	EntityTypeRule = "rule"

	RepositoryKey = "repository.recommendations.rule"
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
			Name:        "Recommendations",
			Description: "Rule-driven product suggestions on product and cart pages",
			Category:    "conversion",
			Icon:        "sparkles",
			Priority:    30,
			EntityTypes: []string{EntityTypeRule},
		}, settings.Map{
			"enabled":         false,
			"max_suggestions": 4,
			"placement":       "product_page",
		}, store),
		db:        db,
		container: container,
		logger:    log,
	}
}

func (f *Feature) Repository() contract.EntityRepository {
	return implementation.NewEntityRepository(f.db, scope.New(FeatureId, EntityTypeRule))
}

// RulesForProduct returns the active rules triggered by a product. Rules
// store their trigger in settings, so matching happens in memory over the
// active set.
func (f *Feature) RulesForProduct(ctx context.Context, productId int) ([]*entity.Entity, error) {
	return f.Repository().FindBySetting(ctx, "trigger_product", productId)
}

func (f *Feature) Init(ctx context.Context) error {
	repo := f.Repository()
	f.container.Instance(RepositoryKey, repo)

	active, err := repo.Count(ctx, string(entity.StatusActive))
	if err != nil {
		return err
	}
	f.logger.Info(FeatureId, "Feature initialized", map[string]interface{}{
		"active_rules": active,
	})
	return nil
}
