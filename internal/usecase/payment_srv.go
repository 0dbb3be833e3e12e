package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/data/entity"
	"eventhub/internal/data/repository"
	"eventhub/internal/dto/request"
	"eventhub/internal/dto/response"
	"eventhub/internal/gateway"
	"eventhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const providerName = "razorpay"

type PaymentService interface {
	CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyResponse, error)
	Refund(ctx context.Context, req *request.RefundRequest) (*response.RefundResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	gw     gateway.Client
	secret string
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw gateway.Client, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   repo,
		gw:     gw,
		secret: config.Gateway.Secret,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	var registrationID *uuid.UUID
	if req.RegistrationID != "" {
		id, err := uuid.Parse(req.RegistrationID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid registration ID format %s", entity.ErrValidation, req.RegistrationID)
		}

		registration, err := s.repo.Registration.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get registration %s: %w", req.RegistrationID, err)
		}
		if registration == nil {
			return nil, fmt.Errorf("registration %s: %w", req.RegistrationID, entity.ErrNotFound)
		}
		registrationID = &id
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = utils.GenerateReceiptID()
	}

	// Gateway expects minor currency units.
	amountMinor := req.Amount * 100

	order, err := s.gw.CreateOrder(ctx, amountMinor, req.Currency, receipt)
	if err != nil {
		// Not retried here: replaying an order creation without an
		// idempotency key can duplicate charges.
		s.log.Error("Gateway order creation failed",
			zap.Error(err),
			zap.Int64("amount_minor", amountMinor),
			zap.String("currency", req.Currency),
		)
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	now := time.Now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RegistrationID:  registrationID,
		Amount:          order.Amount,
		Currency:        order.Currency,
		Provider:        providerName,
		ProviderOrderID: order.ID,
		Status:          entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to persist payment",
			zap.Error(err),
			zap.String("provider_order_id", order.ID),
		)
		return nil, fmt.Errorf("persist payment for order %s: %w", order.ID, err)
	}

	s.log.Info("Payment order created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("provider_order_id", order.ID),
		zap.Int64("amount_minor", order.Amount),
		zap.String("currency", order.Currency),
	)

	return &response.OrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// VerifyPayment recomputes the callback signature and, based on the
// verdict, transitions the payment. The signature check itself is a pure
// predicate; this method is the caller that owns the state change. There
// is no path to a success status that bypasses the predicate.
func (s *paymentService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	payment, err := s.repo.Payment.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get payment for order %s: %w", req.OrderID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment for order %s: %w", req.OrderID, entity.ErrNotFound)
	}

	verified := gateway.VerifySignature(s.secret, req.OrderID, req.PaymentID, req.Signature)

	if !verified {
		s.log.Warn("Payment signature rejected",
			zap.String("provider_order_id", req.OrderID),
			zap.String("provider_payment_id", req.PaymentID),
		)

		if err := s.repo.Payment.MarkFailed(ctx, payment.ID, req.PaymentID); err != nil {
			// A repeat callback on an already-settled payment is not an
			// error for the caller; the verdict still stands.
			if !errors.Is(err, entity.ErrPaymentNotPending) {
				return nil, fmt.Errorf("mark payment %s failed: %w", payment.ID.String(), err)
			}
			s.log.Warn("Rejected callback for non-pending payment",
				zap.String("payment_id", payment.ID.String()),
				zap.String("status", string(payment.Status)),
			)
		}

		return &response.VerifyResponse{Verified: false}, nil
	}

	if err := s.repo.Payment.MarkSucceeded(ctx, payment.ID, req.PaymentID); err != nil {
		return nil, fmt.Errorf("mark payment %s succeeded: %w", payment.ID.String(), err)
	}

	if payment.RegistrationID != nil {
		if err := s.repo.Registration.MarkCompleted(ctx, *payment.RegistrationID, payment.ID); err != nil {
			return nil, fmt.Errorf("complete registration %s: %w", payment.RegistrationID.String(), err)
		}
	}

	s.log.Info("Payment verified",
		zap.String("payment_id", payment.ID.String()),
		zap.String("provider_order_id", req.OrderID),
		zap.String("provider_payment_id", req.PaymentID),
	)

	return &response.VerifyResponse{Verified: true}, nil
}

func (s *paymentService) Refund(ctx context.Context, req *request.RefundRequest) (*response.RefundResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment ID format %s", entity.ErrValidation, req.PaymentID)
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", req.PaymentID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s: %w", req.PaymentID, entity.ErrNotFound)
	}

	if payment.Status == entity.PaymentStatusRefunded {
		return nil, fmt.Errorf("payment %s: %w", req.PaymentID, entity.ErrAlreadyRefunded)
	}
	if payment.Status != entity.PaymentStatusSuccess || payment.ProviderPaymentID == nil {
		return nil, fmt.Errorf("payment %s in status %s cannot be refunded: %w",
			req.PaymentID, payment.Status, entity.ErrConflict)
	}

	amount := req.Amount
	if amount == 0 {
		amount = payment.Amount
	}

	// Gateway call first; the local transition happens only once the
	// provider has acknowledged, so a failed call leaves the payment in
	// its prior state.
	refund, err := s.gw.Refund(ctx, *payment.ProviderPaymentID, amount)
	if err != nil {
		s.log.Error("Gateway refund failed",
			zap.Error(err),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, fmt.Errorf("refund payment %s: %w", req.PaymentID, err)
	}

	if err := s.repo.Payment.MarkRefunded(ctx, payment.ID, refund.ID); err != nil {
		return nil, fmt.Errorf("record refund for payment %s: %w", req.PaymentID, err)
	}

	if payment.RegistrationID != nil {
		if err := s.repo.Registration.MarkRefunded(ctx, *payment.RegistrationID); err != nil {
			// Refund is already recorded; the registration flag is
			// reconciled separately rather than failing the refund.
			s.log.Error("Failed to flag registration refunded",
				zap.Error(err),
				zap.String("registration_id", payment.RegistrationID.String()),
			)
		}
	}

	s.log.Info("Payment refunded",
		zap.String("payment_id", req.PaymentID),
		zap.String("refund_id", refund.ID),
		zap.Int64("amount_minor", amount),
	)

	return &response.RefundResponse{RefundID: refund.ID}, nil
}
