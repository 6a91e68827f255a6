package models

type Product struct {
	BaseModel
	Slug     string `gorm:"index" json:"slug"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}
