package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FeeStatusPending = "pending"
	FeeStatusPaid    = "paid"
)

// FeeModel is one billable item on a student's ledger. paid_amount, due_amount,
// status and last_paid_date are derived from the payment history and must only
// be written through the ledger service.
type FeeModel struct {
	FeeID uuid.UUID `gorm:"column:fee_id;type:uuid;primaryKey" json:"fee_id"`

	StudentEmail    string `gorm:"column:student_email;type:varchar(255);not null;index" json:"student_email"`
	StudentIDString string `gorm:"column:student_id_string;type:varchar(100);index" json:"student_id_string"`
	Grade           string `gorm:"column:grade;type:varchar(50)" json:"grade"`

	FeeType     string `gorm:"column:fee_type;type:varchar(100);not null" json:"fee_type"`
	Frequency   string `gorm:"column:frequency;type:varchar(50)" json:"frequency"`
	Description string `gorm:"column:description;type:text" json:"description"`

	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"column:paid_amount;type:numeric(12,2);not null" json:"paid_amount"`
	DueAmount   decimal.Decimal `gorm:"column:due_amount;type:numeric(12,2);not null" json:"due_amount"`
	LateFee     decimal.Decimal `gorm:"column:late_fee;type:numeric(12,2)" json:"late_fee"`

	Status       string     `gorm:"column:status;type:varchar(20);not null;default:pending;index" json:"status"`
	DueDate      *time.Time `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	LastPaidDate *time.Time `gorm:"column:last_paid_date;type:date" json:"last_paid_date,omitempty"`

	Payments []PaymentHistoryModel `gorm:"foreignKey:FeeID;references:FeeID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FeeModel) TableName() string { return "fees" }

func (m *FeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeID == uuid.Nil {
		m.FeeID = uuid.New()
	}
	return nil
}

func ValidFeeStatus(s string) bool {
	return s == FeeStatusPending || s == FeeStatusPaid
}
