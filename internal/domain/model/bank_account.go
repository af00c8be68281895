package model

import "time"

// BankAccount receives invoiced volume. DailyLimit caps the cumulative
// invoice amount routed through the account per calendar day; 0 means
// unlimited. The cap is advisory: operators may acknowledge an overdraft.
type BankAccount struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	SystemName    string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"system_name"`
	BankName      string  `gorm:"type:varchar(255);not null" json:"bank_name"`
	AccountHolder string  `gorm:"type:varchar(255);not null" json:"account_holder"`
	IBAN          string  `gorm:"type:varchar(34);not null" json:"iban"`
	BIC           string  `gorm:"type:varchar(11)" json:"bic"`
	DailyLimit    float64 `gorm:"type:decimal(12,2);not null;default:0" json:"daily_limit"`
	IsActive      bool    `gorm:"not null;default:true;index" json:"is_active"`
	// At most one account holds the flag; enforced by the exclusive
	// set-default operation, not by a constraint.
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// InvoiceCounter hands out sequential invoice numbers per year. The row is
// incremented inside the invoice transaction so numbers never collide.
type InvoiceCounter struct {
	Year       int   `gorm:"primaryKey" json:"year"`
	LastNumber int64 `gorm:"not null;default:0" json:"last_number"`
}
