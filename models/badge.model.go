package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge defines an awardable credential backed by an NFT contract
type Badge struct {
	gorm.Model
	Name               string `json:"name" gorm:"not null"`
	Description        string `json:"description" gorm:"type:text"`
	ImageURL           string `json:"image_url"`
	NFTContractAddress string `json:"nft_contract_address" gorm:"type:varchar(42)"`
	IsDeleted          bool   `json:"-" gorm:"default:false"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge records an awarded badge. A row is only written after the
// on-chain mint transaction has been confirmed; rows are never updated.
type UserBadge struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID         uint      `json:"badge_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	TokenID         string    `json:"token_id" gorm:"type:varchar(80)"`
	TransactionHash string    `json:"transaction_hash" gorm:"type:varchar(66);not null"`
	AwardedAt       time.Time `json:"awarded_at"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"-"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
