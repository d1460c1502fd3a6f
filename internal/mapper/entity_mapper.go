package mapper

import (
	"storeboost/internal/entity"
	"storeboost/internal/model"
	"storeboost/internal/settings"
)

// EntityMapper converts between the GORM row and the domain entity,
// owning the settings encode/decode boundary.
type EntityMapper struct{}

func NewEntityMapper() *EntityMapper {
	return &EntityMapper{}
}

func (m *EntityMapper) ToEntity(row *model.Entity) *entity.Entity {
	return &entity.Entity{
		Id:         row.Id,
		FeatureId:  row.FeatureId,
		EntityType: row.EntityType,
		Name:       row.Name,
		Settings:   settings.Decode(row.Settings),
		Status:     entity.CoerceStatus(row.Status),
		Priority:   row.Priority,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (m *EntityMapper) ToEntities(rows []*model.Entity) []*entity.Entity {
	entities := make([]*entity.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, m.ToEntity(row))
	}
	return entities
}
