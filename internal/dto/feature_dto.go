package dto

type FeatureResponse struct {
	Id          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Icon        string                 `json:"icon"`
	Priority    int                    `json:"priority"`
	Enabled     bool                   `json:"enabled"`
	EntityTypes []string               `json:"entity_types"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
}

type UpdateFeatureSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" validate:"required"`
}
