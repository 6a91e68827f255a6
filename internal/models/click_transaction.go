package models

import (
	"github.com/google/uuid"
)

// ClickTransaction stores Click payment transaction state.
type ClickTransaction struct {
	BaseModel
	TransactionID   string    `gorm:"column:transaction_id;index" json:"transaction_id"`
	UserID          uuid.UUID `gorm:"type:uuid;index:idx_click_tx_owner" json:"user_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;index:idx_click_tx_owner" json:"product_id"`
	MerchantTransID string    `gorm:"column:merchant_trans_id;index" json:"merchant_trans_id"`
	Status          int       `gorm:"index" json:"status"`
	Amount          int64     `json:"amount"`
	CreateTime      int64     `json:"create_time"`
	PrepareID       int64     `gorm:"column:prepare_id;index" json:"prepare_id"`
	PerformTime     int64     `json:"perform_time"`
	CancelTime      int64     `json:"cancel_time"`
	Provider        string    `gorm:"index" json:"provider"`
}
