// Package scope pins every repository operation to one logical collection
// inside the multiplexed entity table.
package scope

import "gorm.io/gorm"

// Scope is the (feature id, entity type) pair a repository is bound to.
// A feature can never read or mutate another feature's rows, even with a
// guessed id, because this filter is applied before anything else.
type Scope struct {
	FeatureId  string
	EntityType string
}

func New(featureId, entityType string) Scope {
	return Scope{FeatureId: featureId, EntityType: entityType}
}

// Apply narrows a query to the scope. Usable as a gorm scope function.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_id = ? AND entity_type = ?", s.FeatureId, s.EntityType)
}
