package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
)

var SnapClient snap.Client

// InitMidtrans initializes the Midtrans Snap client with the server key.
func InitMidtrans(serverKey string, production bool) {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// CheckoutResult is returned to the client so it can open the Snap popup.
type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout generates a Snap token covering the fee's outstanding due
// amount. The order id embeds the fee id so the webhook can route the
// settlement back to the right ledger row.
func (s *LedgerService) CreateCheckout(ctx context.Context, feeID uuid.UUID, payerName, payerEmail string) (*CheckoutResult, error) {
	fee, _, err := s.GetFee(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if !fee.DueAmount.IsPositive() {
		return nil, fmt.Errorf("fee %s has no outstanding amount", feeID)
	}

	orderID := fmt.Sprintf("FEE-%s-%d", fee.FeeID, time.Now().Unix())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: fee.DueAmount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{OrderID: orderID, SnapToken: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// HandleGatewayNotification routes a Midtrans status notification into the
// ledger. Settled transactions are recorded as ordinary payments; everything
// else is acknowledged and ignored.
func (s *LedgerService) HandleGatewayNotification(ctx context.Context, body map[string]interface{}) error {
	orderID, _ := body["order_id"].(string)
	status, _ := body["transaction_status"].(string)
	grossAmount, _ := body["gross_amount"].(string)

	feeID, err := feeIDFromOrderID(orderID)
	if err != nil {
		return err
	}

	switch status {
	case "settlement", "capture", "success":
		if _, err := decimal.NewFromString(grossAmount); err != nil {
			return fmt.Errorf("bad gross_amount %q on order %s", grossAmount, orderID)
		}
		// Midtrans re-sends notifications; the order id doubles as the
		// receipt number so a replay never books a second entry.
		var count int64
		if err := s.DB.WithContext(ctx).Model(&model.PaymentHistoryModel{}).
			Where("receipt_number = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		_, _, err := s.RecordPayment(ctx, feeID, grossAmount, "", "midtrans", orderID, "gateway settlement")
		return err
	default:
		return nil
	}
}

// feeIDFromOrderID parses order ids of the form FEE-<uuid>-<ts>.
func feeIDFromOrderID(orderID string) (uuid.UUID, error) {
	parts := strings.Split(orderID, "-")
	if len(parts) < 7 || parts[0] != "FEE" {
		return uuid.Nil, fmt.Errorf("unrecognized order_id %q", orderID)
	}
	return uuid.Parse(strings.Join(parts[1:6], "-"))
}
