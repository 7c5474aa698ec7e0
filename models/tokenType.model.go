package models

import "gorm.io/gorm"

// TokenType defines a purchasable token denomination
type TokenType struct {
	gorm.Model
	Name           string  `json:"name" gorm:"not null"`
	Description    string  `json:"description" gorm:"type:text"`
	ConversionRate float64 `json:"conversion_rate" gorm:"not null;default:1"` // tokens per unit of paid currency
	IsActive       bool    `json:"is_active" gorm:"default:true"`
	IsDeleted      bool    `json:"-" gorm:"default:false"`
}

func (TokenType) TableName() string {
	return "token_types"
}
