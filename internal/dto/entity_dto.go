package dto

import "time"

type EntityResponse struct {
	Id        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Settings  map[string]interface{} `json:"settings"`
	Status    string                 `json:"status"`
	Priority  int                    `json:"priority"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type CreateEntityRequest struct {
	Name     string                 `json:"name" validate:"max=255"`
	Settings map[string]interface{} `json:"settings"`
	Status   string                 `json:"status"`
	Priority *int                   `json:"priority"`
}

type UpdateEntityRequest struct {
	Name     *string                `json:"name" validate:"omitempty,max=255"`
	Settings map[string]interface{} `json:"settings"`
	Status   *string                `json:"status"`
	Priority *int                   `json:"priority"`
}

type BulkStatusRequest struct {
	Ids    []int64 `json:"ids" validate:"required"`
	Status string  `json:"status" validate:"required"`
}

type BulkDeleteRequest struct {
	Ids []int64 `json:"ids" validate:"required"`
}

// ReorderRequest maps entity id (JSON object keys are strings) to its new
// priority.
type ReorderRequest struct {
	Priorities map[string]int `json:"priorities" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type BulkResultResponse struct {
	Affected int64 `json:"affected"`
}
