package models

// User represents a customer that owns orders.
type User struct {
	BaseModel
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `gorm:"index" json:"phone"`
	DisplayName string `json:"display_name"`
}
