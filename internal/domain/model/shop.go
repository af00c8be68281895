package model

import "time"

// Shop is the legal entity printed as the invoice letterhead.
type Shop struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	CompanyName string `gorm:"type:varchar(255);not null" json:"company_name"`
	Street      string `gorm:"type:varchar(255)" json:"street"`
	Postcode    string `gorm:"type:varchar(20)" json:"postcode"`
	City        string `gorm:"type:varchar(255)" json:"city"`
	Country     string `gorm:"type:varchar(100)" json:"country"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`
	VATNumber   string `gorm:"type:varchar(50)" json:"vat_number"`
	// Court register info, e.g. "HRB 12345, Amtsgericht Berlin".
	CourtRegister string `gorm:"type:varchar(255)" json:"court_register"`
	IsDefault     bool   `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
