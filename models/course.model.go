package models

import "gorm.io/gorm"

// Course represents a learning course purchasable with tokens
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Level        string `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration     int64  `json:"duration" gorm:"default:0"`       // duration in hours
	Price        int64  `json:"price" gorm:"default:0"`          // token cost
	TokenTypeID  uint   `json:"token_type_id" gorm:"index"`      // token type the price is denominated in
	Status       string `json:"status" gorm:"default:'DRAFT'"`   // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}
