package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schoolku_backend/internals/databases"
	aModel "schoolku_backend/internals/features/admissions/admission/model"
	"schoolku_backend/internals/features/finance/fees/model"
	sModel "schoolku_backend/internals/features/students/student/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateAll(db))
	return db
}

func newFee(t *testing.T, svc *LedgerService, email string, total int64) *model.FeeModel {
	t.Helper()
	fee, err := svc.CreateFee(context.Background(), &model.FeeModel{
		StudentEmail: email,
		FeeType:      "tuition",
		TotalAmount:  decimal.NewFromInt(total),
	})
	require.NoError(t, err)
	return fee
}

func TestResyncEmptyHistory(t *testing.T) {
	state := Resync(decimal.NewFromInt(1500), nil)

	assert.True(t, state.Paid.IsZero())
	assert.Equal(t, "1500", state.Due.String())
	assert.Equal(t, model.FeeStatusPending, state.Status)
	assert.Nil(t, state.LastPaidDate)
}

func TestResyncSumsAndPicksLatestDate(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	history := []model.PaymentHistoryModel{
		{PaymentAmount: decimal.NewFromInt(500), PaymentDate: jan},
		{PaymentAmount: decimal.NewFromInt(300), PaymentDate: mar},
		{PaymentAmount: decimal.NewFromInt(200), PaymentDate: feb},
	}
	state := Resync(decimal.NewFromInt(1500), history)

	assert.Equal(t, "1000", state.Paid.String())
	assert.Equal(t, "500", state.Due.String())
	assert.Equal(t, model.FeeStatusPending, state.Status)
	require.NotNil(t, state.LastPaidDate)
	assert.True(t, mar.Equal(*state.LastPaidDate))
}

func TestResyncPaidStatusOnFullPayment(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	history := []model.PaymentHistoryModel{
		{PaymentAmount: decimal.NewFromInt(1500), PaymentDate: day},
	}
	state := Resync(decimal.NewFromInt(1500), history)

	assert.Equal(t, model.FeeStatusPaid, state.Status)
	assert.True(t, state.Due.IsZero())
}

func TestRecordPaymentFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	updated, history, err := svc.RecordPayment(context.Background(), fee.FeeID, "500", "2024-01-10", "cash", "RCP-1", "")
	require.NoError(t, err)
	assert.Equal(t, "500", updated.PaidAmount.String())
	assert.Equal(t, "1000", updated.DueAmount.String())
	assert.Equal(t, model.FeeStatusPending, updated.Status)
	require.NotNil(t, updated.LastPaidDate)
	assert.Equal(t, "2024-01-10", updated.LastPaidDate.Format("2006-01-02"))
	require.Len(t, history, 1)

	updated, history, err = svc.RecordPayment(context.Background(), fee.FeeID, "1000", "2024-02-10", "cash", "RCP-2", "")
	require.NoError(t, err)
	assert.Equal(t, "1500", updated.PaidAmount.String())
	assert.True(t, updated.DueAmount.IsZero())
	assert.Equal(t, model.FeeStatusPaid, updated.Status)
	assert.Equal(t, "2024-02-10", updated.LastPaidDate.Format("2006-01-02"))

	// newest first
	require.Len(t, history, 2)
	assert.Equal(t, "1000", history[0].PaymentAmount.String())
	assert.Equal(t, "500", history[1].PaymentAmount.String())
}

func TestRecordPaymentRejectsBadAmounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	for _, amount := range []string{"", "abc", "0", "-5"} {
		_, _, err := svc.RecordPayment(context.Background(), fee.FeeID, amount, "", "", "", "")
		assert.ErrorIs(t, err, ErrBadAmount, "amount %q", amount)
	}
}

func TestRecordPaymentUnknownFee(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	_, _, err := svc.RecordPayment(context.Background(), uuid.New(), "100", "", "", "", "")
	assert.ErrorIs(t, err, ErrFeeNotFound)
}

func TestRecordPaymentDateFallsBackToToday(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	updated, _, err := svc.RecordPayment(context.Background(), fee.FeeID, "100", "not-a-date", "", "", "")
	require.NoError(t, err)
	require.NotNil(t, updated.LastPaidDate)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), updated.LastPaidDate.Format("2006-01-02"))
}

func TestEditPaymentResyncsLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	_, _, err := svc.RecordPayment(context.Background(), fee.FeeID, "500", "2024-01-10", "cash", "", "")
	require.NoError(t, err)
	updated, history, err := svc.RecordPayment(context.Background(), fee.FeeID, "1000", "2024-02-10", "cash", "", "")
	require.NoError(t, err)
	require.Equal(t, model.FeeStatusPaid, updated.Status)

	// history[1] is the January 500 entry; shrink it to 300
	amount := "300"
	updated, history, err = svc.EditPayment(context.Background(), fee.FeeID, history[1].PaymentID,
		ApplyPaymentEdit(&amount, nil, nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "1300", updated.PaidAmount.String())
	assert.Equal(t, "200", updated.DueAmount.String())
	assert.Equal(t, model.FeeStatusPending, updated.Status)
	assert.Equal(t, "2024-02-10", updated.LastPaidDate.Format("2006-01-02"))
	require.Len(t, history, 2)
	assert.Equal(t, "300", history[1].PaymentAmount.String())
}

func TestEditPaymentInvalidDateKeepsStored(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	_, history, err := svc.RecordPayment(context.Background(), fee.FeeID, "500", "2024-01-10", "", "", "")
	require.NoError(t, err)

	badDate := "31/01/2024"
	_, history, err = svc.EditPayment(context.Background(), fee.FeeID, history[0].PaymentID,
		ApplyPaymentEdit(nil, &badDate, nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", history[0].PaymentDate.Format("2006-01-02"))
}

func TestEditPaymentRejectsBadAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	_, history, err := svc.RecordPayment(context.Background(), fee.FeeID, "500", "2024-01-10", "", "", "")
	require.NoError(t, err)

	amount := "-10"
	_, _, err = svc.EditPayment(context.Background(), fee.FeeID, history[0].PaymentID,
		ApplyPaymentEdit(&amount, nil, nil, nil, nil))
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestEditPaymentUnknownEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	fee := newFee(t, svc, "alice@example.com", 1500)

	_, _, err := svc.EditPayment(context.Background(), fee.FeeID, uuid.New(),
		ApplyPaymentEdit(nil, nil, nil, nil, nil))
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestCreateFeeResolvesGradeFromStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	sid := "STD-20240110120000-ABCD"
	require.NoError(t, db.Create(&sModel.StudentModel{
		Email:       "bob@example.com",
		StudentID:   &sid,
		StudentName: "Bob",
		Grade:       "5",
	}).Error)

	fee := newFee(t, svc, "bob@example.com", 1000)
	assert.Equal(t, "5", fee.Grade)
	assert.Equal(t, sid, fee.StudentIDString)
}

func TestCreateFeeResolvesGradeFromAdmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	require.NoError(t, db.Create(&aModel.NewAdmissionModel{
		StudentID:   "STD-20240110120000-QRST",
		StudentName: "Carol",
		Email:       "carol@example.com",
		Grade:       "7",
		Status:      aModel.AdmissionStatusPending,
	}).Error)

	fee := newFee(t, svc, "carol@example.com", 1000)
	assert.Equal(t, "7", fee.Grade)
}

func TestCreateFeeWithoutStudentLeavesGradeBlank(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	fee := newFee(t, svc, "nobody@example.com", 1000)
	assert.Empty(t, fee.Grade)
	assert.Equal(t, model.FeeStatusPending, fee.Status)
	assert.Equal(t, "1000", fee.DueAmount.String())
}
