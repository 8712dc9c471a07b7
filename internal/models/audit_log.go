package models

// AuditLog records sensitive investor operations for later review.
type AuditLog struct {
	Base
	InvestorID string `gorm:"type:uuid;index" json:"investor_id"`
	Action     string `gorm:"not null" json:"action"`
	EntityType string `gorm:"not null" json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details,omitempty"`
}
