package models

import "gorm.io/gorm"

// UserWallet holds a user's token balance for one token type.
// Absence of a row means a balance of zero. Balances are only mutated
// through the conditional credit/debit statements in the wallet
// controller; they must never go negative.
type UserWallet struct {
	gorm.Model
	UserID      uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_wallet_user_token"`
	TokenTypeID uint  `json:"token_type_id" gorm:"not null;uniqueIndex:idx_wallet_user_token"`
	Tokens      int64 `json:"tokens" gorm:"not null;default:0"`

	TokenType TokenType `gorm:"foreignKey:TokenTypeID" json:"-"`
}

func (UserWallet) TableName() string {
	return "user_wallets"
}
