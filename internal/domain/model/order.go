package model

import "time"

type PaymentMethod string

const (
	PaymentPrepayment PaymentMethod = "prepayment"
	PaymentInvoice    PaymentMethod = "invoice"
)

// Order is a finalized heating-oil purchase. Created once from a draft,
// mutated only by admin edits, status transitions and invoice generation.
// Never deleted.
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"type:varchar(30);not null;uniqueIndex" json:"order_number"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(50)" json:"customer_phone"`

	DeliveryFirstName string `gorm:"type:varchar(100);not null" json:"delivery_first_name"`
	DeliveryLastName  string `gorm:"type:varchar(100);not null" json:"delivery_last_name"`
	DeliveryStreet    string `gorm:"type:varchar(255);not null" json:"delivery_street"`
	DeliveryPostcode  string `gorm:"type:varchar(20);not null" json:"delivery_postcode"`
	DeliveryCity      string `gorm:"type:varchar(255);not null" json:"delivery_city"`
	DeliveryPhone     string `gorm:"type:varchar(50)" json:"delivery_phone"`

	UseSameAddress   bool   `gorm:"not null;default:true" json:"use_same_address"`
	BillingFirstName string `gorm:"type:varchar(100)" json:"billing_first_name"`
	BillingLastName  string `gorm:"type:varchar(100)" json:"billing_last_name"`
	BillingStreet    string `gorm:"type:varchar(255)" json:"billing_street"`
	BillingPostcode  string `gorm:"type:varchar(20)" json:"billing_postcode"`
	BillingCity      string `gorm:"type:varchar(255)" json:"billing_city"`

	Product       string  `gorm:"type:varchar(100);not null" json:"product"`
	Liters        int64   `gorm:"not null" json:"liters"`
	PricePerLiter float64 `gorm:"type:decimal(12,4);not null" json:"price_per_liter"`
	BasePrice     float64 `gorm:"type:decimal(12,2);not null" json:"base_price"`
	DeliveryFee   float64 `gorm:"type:decimal(12,2);not null;default:0" json:"delivery_fee"`
	Discount      float64 `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TotalAmount   float64 `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	BankAccountID *int64        `gorm:"index" json:"bank_account_id"`
	// Shop the invoice was issued under; a regenerated artifact keeps
	// this letterhead.
	ShopID *int64 `gorm:"index" json:"shop_id"`

	Status         OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	InvoiceNumber  *string     `gorm:"type:varchar(30);uniqueIndex" json:"invoice_number"`
	InvoiceDate    *time.Time  `gorm:"index" json:"invoice_date"`
	InvoiceFileURL string      `gorm:"type:varchar(255)" json:"invoice_file_url"`
	Notes          string      `gorm:"type:text" json:"notes"`

	// Storefront brand that produced the order; routes the confirmation
	// mail and picks the invoice VAT rate.
	OriginDomain string `gorm:"type:varchar(100);not null;index" json:"origin_domain"`

	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt          time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	LatestStatusChange *time.Time `json:"latest_status_change"`
}
