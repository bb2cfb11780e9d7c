package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

type FeeController struct {
	DB       *gorm.DB
	Ledger   *service.LedgerService
	Validate *validator.Validate
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db, Ledger: service.NewLedgerService(db), Validate: validator.New()}
}

// POST /api/fees
func (h *FeeController) CreateFee(c *fiber.Ctx) error {
	var req dto.CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	fee, err := req.ToModel()
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"total_amount": "must be a valid decimal amount",
		})
	}
	if !fee.TotalAmount.IsPositive() {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"total_amount": "must be greater than zero",
		})
	}

	created, err := h.Ledger.CreateFee(c.Context(), fee)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Fee created", dto.NewFeeResponse(created, nil))
}

// GET /api/fees
// Filters: ?student_email=, ?student_id=, ?status=, ?fee_type=
func (h *FeeController) GetFees(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.Context()).Model(&model.FeeModel{})
	if v := strings.TrimSpace(c.Query("student_email")); v != "" {
		db = db.Where("student_email = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		db = db.Where("student_id_string = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		db = db.Where("status = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("fee_type")); v != "" {
		db = db.Where("fee_type = ?", v)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.FeeModel
	if err := db.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Fees fetched", fiber.Map{
		"fees":       rows,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/fees/:id
func (h *FeeController) GetFeeByID(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Fee not found")
	}
	fee, history, err := h.Ledger.GetFee(c.Context(), feeID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.Success(c, "Fee fetched", dto.NewFeeResponse(fee, history))
}

// POST /api/fees/:id/record-payment
func (h *FeeController) RecordPayment(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Fee not found")
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	fee, history, err := h.Ledger.RecordPayment(c.Context(), feeID,
		req.PaymentAmount, req.PaymentDate, req.PaymentMethod, req.ReceiptNumber, req.Notes)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.Success(c, "Payment recorded", dto.NewFeeResponse(fee, history))
}

// PUT/PATCH /api/fees/:id/payment-history/:payment_id
func (h *FeeController) UpdatePayment(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Fee not found")
	}
	paymentID, err := uuid.Parse(c.Params("payment_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Payment entry not found")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	fee, history, err := h.Ledger.EditPayment(c.Context(), feeID, paymentID,
		service.ApplyPaymentEdit(req.PaymentAmount, req.PaymentDate, req.PaymentMethod, req.ReceiptNumber, req.Notes))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.Success(c, "Payment updated", dto.NewFeeResponse(fee, history))
}

// POST /api/fees/:id/checkout
func (h *FeeController) Checkout(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Fee not found")
	}

	payerName, _ := c.Locals(authMw.LocUserEmail).(string)
	payerEmail := payerName

	result, err := h.Ledger.CreateCheckout(c.Context(), feeID, payerName, payerEmail)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.Success(c, "Checkout created", result)
}

// POST /api/fees/webhook
// Called by the payment gateway. Always answers 200 for recognized payloads so
// Midtrans stops retrying.
func (h *FeeController) HandleGatewayWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if err := h.Ledger.HandleGatewayNotification(c.Context(), body); err != nil {
		log.Printf("[ERROR] gateway webhook: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", nil)
}

func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFeeNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBadAmount):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
}
