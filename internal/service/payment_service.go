package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/pkg/razorpay"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentGateway is the slice of the Razorpay client the service needs.
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type CreateOrderRequest struct {
	// Amount is in major units (rupees).
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type CreateOrderResponse struct {
	KeyID    string         `json:"keyId"`
	OrderID  string         `json:"orderId"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Payment  *model.Payment `json:"payment"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type PaymentService interface {
	CreateOrder(ctx context.Context, caller *Principal, req CreateOrderRequest) (*CreateOrderResponse, error)
	Verify(ctx context.Context, caller *Principal, req VerifyPaymentRequest) (*model.Payment, error)
	ListMine(ctx context.Context, caller *Principal) ([]model.Payment, error)
	ListAll(ctx context.Context, caller *Principal) ([]model.Payment, error)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway PaymentGateway
	now     func() time.Time
}

func NewPaymentService(repo repository.PaymentRepository, gateway PaymentGateway) PaymentService {
	return &paymentService{repo: repo, gateway: gateway, now: time.Now}
}

func (s *paymentService) CreateOrder(ctx context.Context, caller *Principal, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	paise, err := razorpay.ToSubunits(req.Amount)
	if err != nil {
		return nil, invalid("Amount must be greater than zero")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}
	receipt := strings.TrimSpace(req.Receipt)
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", s.now().UnixNano())
	}

	notes := map[string]string{"adminUserId": caller.ID().String()}
	for k, v := range req.Notes {
		notes[k] = v
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   paise,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	noteMap := datatypes.JSONMap{}
	for k, v := range notes {
		noteMap[k] = v
	}
	payment := &model.Payment{
		AdminUserID:     caller.ID(),
		RazorpayOrderID: order.ID,
		Amount:          paise,
		Currency:        currency,
		Receipt:         receipt,
		Status:          model.PaymentCreated,
		Notes:           noteMap,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, conflictOr(err, "Order %s already recorded", order.ID)
	}

	return &CreateOrderResponse{
		KeyID:    s.gateway.KeyID(),
		OrderID:  order.ID,
		Amount:   paise,
		Currency: currency,
		Payment:  payment,
	}, nil
}

func (s *paymentService) Verify(ctx context.Context, caller *Principal, req VerifyPaymentRequest) (*model.Payment, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, invalid("razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
	}

	payment, err := s.repo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, notFoundOr(err, "Order")
	}
	if !caller.IsSuperAdmin() && payment.AdminUserID != caller.ID() {
		return nil, newError(ErrNotFound, "Order not found")
	}

	if payment.Status == model.PaymentPaid {
		if payment.RazorpayPaymentID != nil && *payment.RazorpayPaymentID == req.PaymentID {
			return payment, nil
		}
		return nil, newError(ErrConflict, "Order already paid")
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, invalid("Invalid payment signature")
	}

	paidAt := s.now()
	payment.Status = model.PaymentPaid
	payment.RazorpayPaymentID = &req.PaymentID
	payment.RazorpaySignature = &req.Signature
	payment.PaidAt = &paidAt
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListMine(ctx context.Context, caller *Principal) ([]model.Payment, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.FindByAdmin(ctx, caller.ID())
}

func (s *paymentService) ListAll(ctx context.Context, caller *Principal) ([]model.Payment, error) {
	if err := Authorize(caller, model.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// IsGatewayUnavailable reports a missing gateway configuration.
func IsGatewayUnavailable(err error) bool {
	return errors.Is(err, razorpay.ErrNotConfigured)
}
