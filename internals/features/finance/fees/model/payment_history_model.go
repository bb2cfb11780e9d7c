package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentHistoryModel is an append-mostly ledger entry under a fee. Edits go
// through the ledger service so the parent fee is resynced from the full set.
type PaymentHistoryModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	FeeID     uuid.UUID `gorm:"column:fee_id;type:uuid;not null;index" json:"fee_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null" json:"payment_amount"`
	PaymentDate   time.Time       `gorm:"column:payment_date;type:date;not null" json:"payment_date"`

	PaymentMethod string  `gorm:"column:payment_method;type:varchar(50)" json:"payment_method"`
	ReceiptNumber *string `gorm:"column:receipt_number;type:varchar(100)" json:"receipt_number,omitempty"`
	Notes         *string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentHistoryModel) TableName() string { return "payment_histories" }

func (m *PaymentHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
