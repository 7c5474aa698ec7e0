package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	AvatarURL       string    `json:"avatar_url" gorm:"default:''"`
	Name            string    `json:"name" gorm:"default:''"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Mobile          string    `json:"mobile" gorm:"default:''"`
	Role            string    `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	Password        string    `json:"-" gorm:"not null"`
	Headline        string    `json:"headline" gorm:"default:''"`
	Bio             string    `json:"bio" gorm:"type:text"`
	WalletAddress   string    `json:"wallet_address" gorm:"default:''"` // external Ethereum address, 0x-prefixed
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin       time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}
