package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aModel "schoolku_backend/internals/features/admissions/admission/model"
	"schoolku_backend/internals/features/finance/fees/model"
	sModel "schoolku_backend/internals/features/students/student/model"
)

// LedgerService owns every write to fees and payment_histories. The derived
// columns on a fee (paid_amount, due_amount, status, last_paid_date) are never
// touched outside of it.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// LedgerState is the derived side of a fee, recomputed from its history.
type LedgerState struct {
	Paid         decimal.Decimal
	Due          decimal.Decimal
	Status       string
	LastPaidDate *time.Time
}

// Resync recomputes the derived fields from the full history set.
// paid is the sum over all entries; due is total minus paid, even when
// overpayment pushes it negative.
func Resync(total decimal.Decimal, history []model.PaymentHistoryModel) LedgerState {
	paid := decimal.Zero
	var last *time.Time
	for i := range history {
		paid = paid.Add(history[i].PaymentAmount)
		d := history[i].PaymentDate
		if last == nil || d.After(*last) {
			t := d
			last = &t
		}
	}

	status := model.FeeStatusPending
	if paid.GreaterThanOrEqual(total) {
		status = model.FeeStatusPaid
	}

	return LedgerState{
		Paid:         paid,
		Due:          total.Sub(paid),
		Status:       status,
		LastPaidDate: last,
	}
}

// CreateFee persists a new fee. Grade resolution is best-effort: the student's
// own grade wins, then the admission row found by student_id, then by email,
// then blank. Missing grade is never an error.
func (s *LedgerService) CreateFee(ctx context.Context, fee *model.FeeModel) (*model.FeeModel, error) {
	db := s.DB.WithContext(ctx)

	var st sModel.StudentModel
	if err := db.Where("email = ?", fee.StudentEmail).First(&st).Error; err == nil {
		if st.StudentID != nil {
			fee.StudentIDString = *st.StudentID
		}
		fee.Grade = st.Grade
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if fee.Grade == "" {
		fee.Grade = s.resolveGradeFromAdmissions(db, fee.StudentIDString, fee.StudentEmail)
	}

	fee.PaidAmount = decimal.Zero
	fee.DueAmount = fee.TotalAmount
	fee.Status = model.FeeStatusPending
	fee.LastPaidDate = nil

	if err := db.Create(fee).Error; err != nil {
		log.Printf("[ERROR] create fee for %s: %v", fee.StudentEmail, err)
		return nil, err
	}
	return fee, nil
}

func (s *LedgerService) resolveGradeFromAdmissions(db *gorm.DB, studentID, email string) string {
	var adm aModel.NewAdmissionModel
	if studentID != "" {
		if err := db.Where("student_id = ?", studentID).First(&adm).Error; err == nil {
			return adm.Grade
		}
	}
	if err := db.Where("email = ?", email).Order("created_at DESC").First(&adm).Error; err == nil {
		return adm.Grade
	}
	return ""
}

// RecordPayment appends one history entry and updates the fee's derived fields
// in a single transaction with the fee row locked, so two concurrent payments
// can never base their arithmetic on the same snapshot.
func (s *LedgerService) RecordPayment(ctx context.Context, feeID uuid.UUID, amountRaw, dateRaw, method, receipt, notes string) (*model.FeeModel, []model.PaymentHistoryModel, error) {
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || !amount.IsPositive() {
		return nil, nil, ErrBadAmount
	}
	paymentDate := parsePaymentDate(dateRaw)

	var fee model.FeeModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("fee_id = ?", feeID).First(&fee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeNotFound
			}
			return err
		}

		entry := model.PaymentHistoryModel{
			FeeID:         fee.FeeID,
			PaymentAmount: amount,
			PaymentDate:   paymentDate,
			PaymentMethod: method,
		}
		if receipt != "" {
			entry.ReceiptNumber = &receipt
		}
		if notes != "" {
			entry.Notes = &notes
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		fee.PaidAmount = fee.PaidAmount.Add(amount)
		fee.DueAmount = fee.TotalAmount.Sub(fee.PaidAmount)
		if fee.PaidAmount.GreaterThanOrEqual(fee.TotalAmount) {
			fee.Status = model.FeeStatusPaid
		} else {
			fee.Status = model.FeeStatusPending
		}
		if fee.LastPaidDate == nil || paymentDate.After(*fee.LastPaidDate) {
			d := paymentDate
			fee.LastPaidDate = &d
		}
		return tx.Save(&fee).Error
	})
	if err != nil {
		return nil, nil, err
	}

	history, err := s.historyNewestFirst(ctx, fee.FeeID)
	if err != nil {
		return nil, nil, err
	}
	return &fee, history, nil
}

// EditPayment applies a partial update to one history entry, then resyncs the
// parent fee from the full history set. An amount that does not parse as a
// positive decimal is rejected; an unparseable date leaves the stored date.
func (s *LedgerService) EditPayment(ctx context.Context, feeID, paymentID uuid.UUID, apply func(*model.PaymentHistoryModel) error) (*model.FeeModel, []model.PaymentHistoryModel, error) {
	var fee model.FeeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("fee_id = ?", feeID).First(&fee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeNotFound
			}
			return err
		}

		var entry model.PaymentHistoryModel
		if err := tx.Where("payment_id = ? AND fee_id = ?", paymentID, feeID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := apply(&entry); err != nil {
			return err
		}
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		var history []model.PaymentHistoryModel
		if err := tx.Where("fee_id = ?", feeID).Find(&history).Error; err != nil {
			return err
		}
		state := Resync(fee.TotalAmount, history)
		fee.PaidAmount = state.Paid
		fee.DueAmount = state.Due
		fee.Status = state.Status
		fee.LastPaidDate = state.LastPaidDate
		return tx.Save(&fee).Error
	})
	if err != nil {
		return nil, nil, err
	}

	history, err := s.historyNewestFirst(ctx, fee.FeeID)
	if err != nil {
		return nil, nil, err
	}
	return &fee, history, nil
}

// GetFee returns the fee with its history ordered newest-first.
func (s *LedgerService) GetFee(ctx context.Context, feeID uuid.UUID) (*model.FeeModel, []model.PaymentHistoryModel, error) {
	var fee model.FeeModel
	if err := s.DB.WithContext(ctx).Where("fee_id = ?", feeID).First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFeeNotFound
		}
		return nil, nil, err
	}
	history, err := s.historyNewestFirst(ctx, feeID)
	if err != nil {
		return nil, nil, err
	}
	return &fee, history, nil
}

func (s *LedgerService) historyNewestFirst(ctx context.Context, feeID uuid.UUID) ([]model.PaymentHistoryModel, error) {
	var history []model.PaymentHistoryModel
	err := s.DB.WithContext(ctx).
		Where("fee_id = ?", feeID).
		Order("payment_date DESC, created_at DESC").
		Find(&history).Error
	return history, err
}

// ApplyPaymentEdit builds the edit closure for EditPayment out of optional
// request fields.
func ApplyPaymentEdit(amount, date, method, receipt, notes *string) func(*model.PaymentHistoryModel) error {
	return func(entry *model.PaymentHistoryModel) error {
		if amount != nil {
			parsed, err := decimal.NewFromString(*amount)
			if err != nil || !parsed.IsPositive() {
				return ErrBadAmount
			}
			entry.PaymentAmount = parsed
		}
		if date != nil {
			if t, err := time.Parse("2006-01-02", *date); err == nil {
				entry.PaymentDate = t
			}
			// unparseable dates keep the stored value
		}
		if method != nil {
			entry.PaymentMethod = *method
		}
		if receipt != nil {
			if *receipt == "" {
				entry.ReceiptNumber = nil
			} else {
				entry.ReceiptNumber = receipt
			}
		}
		if notes != nil {
			if *notes == "" {
				entry.Notes = nil
			} else {
				entry.Notes = notes
			}
		}
		return nil
	}
}

// lockForUpdate takes a row lock on Postgres. sqlite has no row locks; its
// writes serialize on the database lock instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func parsePaymentDate(raw string) time.Time {
	if raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
