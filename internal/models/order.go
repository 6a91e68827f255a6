package models

import (
	"github.com/google/uuid"
)

// Order is the merchant-side order a Click payment is made for.
type Order struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
}
