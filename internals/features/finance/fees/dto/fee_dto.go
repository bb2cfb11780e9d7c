package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
)

type CreateFeeRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
	FeeType      string `json:"fee_type" validate:"required,min=2,max=100"`
	TotalAmount  string `json:"total_amount" validate:"required"`
	Frequency    string `json:"frequency" validate:"omitempty,max=50"`
	Description  string `json:"description" validate:"omitempty"`
	LateFee      string `json:"late_fee" validate:"omitempty"`
	DueDate      string `json:"due_date" validate:"omitempty"`
}

func (r *CreateFeeRequest) Normalize() {
	r.StudentEmail = strings.ToLower(strings.TrimSpace(r.StudentEmail))
	r.FeeType = strings.TrimSpace(r.FeeType)
	r.TotalAmount = strings.TrimSpace(r.TotalAmount)
	r.Frequency = strings.TrimSpace(r.Frequency)
	r.Description = strings.TrimSpace(r.Description)
	r.LateFee = strings.TrimSpace(r.LateFee)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

// ToModel parses the money fields. total_amount must be a valid decimal;
// late_fee falls back to zero, due_date to nil.
func (r *CreateFeeRequest) ToModel() (*model.FeeModel, error) {
	total, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return nil, err
	}

	lateFee := decimal.Zero
	if r.LateFee != "" {
		if parsed, err := decimal.NewFromString(r.LateFee); err == nil {
			lateFee = parsed
		}
	}

	var dueDate *time.Time
	if r.DueDate != "" {
		if t, err := time.Parse("2006-01-02", r.DueDate); err == nil {
			dueDate = &t
		}
	}

	return &model.FeeModel{
		StudentEmail: r.StudentEmail,
		FeeType:      r.FeeType,
		Frequency:    r.Frequency,
		Description:  r.Description,
		TotalAmount:  total,
		PaidAmount:   decimal.Zero,
		DueAmount:    total,
		LateFee:      lateFee,
		Status:       model.FeeStatusPending,
		DueDate:      dueDate,
	}, nil
}

// RecordPaymentRequest carries the amount as a raw string so the service can
// reject anything that is not a positive decimal with a clear message.
type RecordPaymentRequest struct {
	PaymentAmount string `json:"payment_amount" validate:"required"`
	PaymentDate   string `json:"payment_date" validate:"omitempty"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=50"`
	ReceiptNumber string `json:"receipt_number" validate:"omitempty,max=100"`
	Notes         string `json:"notes" validate:"omitempty"`
}

func (r *RecordPaymentRequest) Normalize() {
	r.PaymentAmount = strings.TrimSpace(r.PaymentAmount)
	r.PaymentDate = strings.TrimSpace(r.PaymentDate)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	r.ReceiptNumber = strings.TrimSpace(r.ReceiptNumber)
	r.Notes = strings.TrimSpace(r.Notes)
}

// UpdatePaymentRequest is a partial edit: only non-nil fields are applied.
type UpdatePaymentRequest struct {
	PaymentAmount *string `json:"payment_amount" validate:"omitempty"`
	PaymentDate   *string `json:"payment_date" validate:"omitempty"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=50"`
	ReceiptNumber *string `json:"receipt_number" validate:"omitempty,max=100"`
	Notes         *string `json:"notes" validate:"omitempty"`
}

func (r *UpdatePaymentRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.PaymentAmount)
	trim(r.PaymentDate)
	trim(r.PaymentMethod)
	trim(r.ReceiptNumber)
	trim(r.Notes)
}

// FeeResponse embeds the fee with its history ordered newest-first.
type FeeResponse struct {
	*model.FeeModel
	PaymentHistory []model.PaymentHistoryModel `json:"payment_history"`
}

func NewFeeResponse(fee *model.FeeModel, history []model.PaymentHistoryModel) FeeResponse {
	if history == nil {
		history = []model.PaymentHistoryModel{}
	}
	return FeeResponse{FeeModel: fee, PaymentHistory: history}
}
