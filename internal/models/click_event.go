package models

import "gorm.io/datatypes"

// ClickEvent is an audit row written for every Click webhook call.
type ClickEvent struct {
	BaseModel
	Action          string         `gorm:"index" json:"action"`
	ClickTransID    string         `gorm:"column:click_trans_id;index" json:"click_trans_id"`
	MerchantTransID string         `gorm:"column:merchant_trans_id" json:"merchant_trans_id"`
	Payload         datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	SignValid       bool           `json:"sign_valid"`
	ErrorCode       int            `json:"error_code"`
	ErrorNote       string         `json:"error_note"`
}
