package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"time"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/pkg/mailer"
	"chatfolders-be/internal/repository/memory"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"

	"chatfolders-be/pkg/events"
	pktNats "chatfolders-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetOrderSummary(ctx context.Context, planId uuid.UUID) (*dto.OrderSummaryResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID) error
	ReactivateSubscription(ctx context.Context, userId uuid.UUID) error
	ValidateSubscription(ctx context.Context, userId uuid.UUID) (*dto.ValidateSubscriptionResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	mirror         *memory.SubscriptionMirror
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	mirror *memory.SubscriptionMirror,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		mirror:         mirror,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

// GetOrderSummary prices a plan before checkout so the client can show
// the breakdown without creating a subscription.
func (s *paymentService) GetOrderSummary(ctx context.Context, planId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	subtotal := plan.Price
	tax := subtotal * plan.TaxRate

	return &dto.OrderSummaryResponse{
		PlanName:      plan.Name,
		BillingPeriod: string(plan.BillingPeriod),
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		Currency:      plan.Currency,
	}, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:                 subId,
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusUnpaid,
		PaymentStatus:      entity.PaymentStatusPending,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
	}
	if plan.BillingPeriod == entity.BillingPeriodYearly {
		sub.CurrentPeriodEnd = time.Now().AddDate(1, 0, 0)
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// External call stays outside any DB transaction
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	clientURL := os.Getenv("CLIENT_URL")
	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", clientURL)

	finalAmount := int64(plan.Price + (plan.Price * plan.TaxRate))

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: finalAmount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func midtransSignature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}

// HandleNotification processes Midtrans payment webhooks. The signature
// is SHA512(order_id + status_code + gross_amount + server_key).
// Malformed or unverifiable payloads are logged and dropped (nil return,
// so the processor gets a 200 and stops retrying); only transient faults
// like DB errors propagate, and the controller answers those with a 500
// so Midtrans retries.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	fmt.Printf("[WEBHOOK] OrderId: %s | Status: %s\n", req.OrderId, req.TransactionStatus)

	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	expectedSignature := midtransSignature(req.OrderId, req.StatusCode, req.GrossAmount, serverKey)

	if req.SignatureKey != expectedSignature {
		fmt.Printf("[WEBHOOK] Signature mismatch for OrderId=%s - dropped\n", req.OrderId)
		return nil
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		fmt.Printf("[WEBHOOK] Unparseable order id %q - dropped\n", req.OrderId)
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		fmt.Printf("[WEBHOOK] No subscription for OrderId=%s - dropped\n", req.OrderId)
		return nil
	}

	var newStatus entity.SubscriptionStatus
	var newPaymentStatus entity.PaymentStatus

	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.SubscriptionStatusActive
		newPaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionStatusUnpaid
		newPaymentStatus = entity.PaymentStatusFailed
	case "pending":
		return nil
	default:
		fmt.Printf("[WEBHOOK] Unknown status '%s' - no action taken\n", req.TransactionStatus)
		return nil
	}

	// Webhooks can arrive more than once; a repeat is a no-op
	if sub.Status == newStatus && sub.PaymentStatus == newPaymentStatus {
		return nil
	}

	sub.Status = newStatus
	sub.PaymentStatus = newPaymentStatus
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// The next limit check re-resolves against the fresh row
	s.mirror.Invalidate(sub.UserId.String())

	s.notifyOutcome(ctx, sub, newStatus)
	return nil
}

// notifyOutcome emits the billing event and sends the matching email.
// Both are best effort; the subscription row is already committed.
func (s *paymentService) notifyOutcome(ctx context.Context, sub *entity.UserSubscription, status entity.SubscriptionStatus) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, _ := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	user, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: sub.UserId})

	planName := "subscription"
	if plan != nil {
		planName = plan.Name
	}

	eventType := events.TypePaymentFailed
	if status == entity.SubscriptionStatusActive {
		eventType = events.TypeSubscriptionActivated
	}

	if s.eventPublisher != nil {
		evt := events.NewSubscriptionEvent(eventType, sub.UserId.String(), sub.PlanId.String(), map[string]interface{}{
			"subscription_id": sub.Id.String(),
			"period_end":      sub.CurrentPeriodEnd,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
		}
	}

	if s.emailService == nil || user == nil || plan == nil {
		return
	}
	if status == entity.SubscriptionStatusActive {
		amount := plan.Price + (plan.Price * plan.TaxRate)
		_ = s.emailService.SendSubscriptionReceipt(user.Email, planName, amount, plan.Currency, sub.CurrentPeriodEnd.Format("January 2, 2006"))
	} else {
		_ = s.emailService.SendPaymentFailed(user.Email, planName)
	}
}

func (s *paymentService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	activeSub, err := s.findCurrentSubscription(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if activeSub == nil {
		free := defaultFreePlan()
		return &dto.SubscriptionStatusResponse{
			Plan: dto.PlanInfo{
				Name: free.Name,
				Slug: free.Slug,
			},
			Status:        "inactive",
			PaymentStatus: string(entity.PaymentStatusPending),
		}, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found for active subscription")
	}

	return &dto.SubscriptionStatusResponse{
		Plan: dto.PlanInfo{
			Id:   plan.Id,
			Name: plan.Name,
			Slug: plan.Slug,
		},
		Status:             string(activeSub.Status),
		PaymentStatus:      string(activeSub.PaymentStatus),
		CurrentPeriodStart: &activeSub.CurrentPeriodStart,
		CurrentPeriodEnd:   &activeSub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  activeSub.CancelAtPeriodEnd,
	}, nil
}

// CancelSubscription flags the subscription to lapse at period end.
// Paid access is retained until then.
func (s *paymentService) CancelSubscription(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	activeSub, err := s.findCurrentSubscription(ctx, uow, userId)
	if err != nil {
		return err
	}
	if activeSub == nil {
		return errors.New("no active subscription found")
	}

	activeSub.Status = entity.SubscriptionStatusCanceled
	activeSub.CancelAtPeriodEnd = true
	activeSub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, activeSub); err != nil {
		return err
	}

	s.mirror.Invalidate(userId.String())

	if s.eventPublisher != nil {
		evt := events.NewSubscriptionEvent(events.TypeSubscriptionCanceled, userId.String(), activeSub.PlanId.String(), map[string]interface{}{
			"subscription_id": activeSub.Id.String(),
			"period_end":      activeSub.CurrentPeriodEnd,
		})
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return nil
}

// ReactivateSubscription undoes a pending cancellation while the paid
// period is still running.
func (s *paymentService) ReactivateSubscription(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}

	var canceledSub *entity.UserSubscription
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusCanceled && sub.CurrentPeriodEnd.After(time.Now()) {
			canceledSub = sub
			break
		}
	}
	if canceledSub == nil {
		return errors.New("no cancellable subscription to reactivate")
	}

	canceledSub.Status = entity.SubscriptionStatusActive
	canceledSub.CancelAtPeriodEnd = false
	canceledSub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, canceledSub); err != nil {
		return err
	}

	s.mirror.Invalidate(userId.String())

	if s.eventPublisher != nil {
		evt := events.NewSubscriptionEvent(events.TypeSubscriptionReactivated, userId.String(), canceledSub.PlanId.String(), map[string]interface{}{
			"subscription_id": canceledSub.Id.String(),
		})
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return nil
}

// ValidateSubscription is the polling fallback the extension calls when
// no webhook outcome has shown up yet.
func (s *paymentService) ValidateSubscription(ctx context.Context, userId uuid.UUID) (*dto.ValidateSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	activeSub, err := s.findCurrentSubscription(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if activeSub == nil {
		return &dto.ValidateSubscriptionResponse{
			Active:   false,
			PlanSlug: "free",
		}, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
	if err != nil {
		return nil, err
	}

	slug := "free"
	if plan != nil {
		slug = plan.Slug
	}
	return &dto.ValidateSubscriptionResponse{
		Active:   true,
		PlanSlug: slug,
	}, nil
}

// findCurrentSubscription picks the subscription that currently grants
// access: active first, then canceled-but-inside-period, then just paid.
func (s *paymentService) findCurrentSubscription(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserSubscription, error) {
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(time.Now()) {
			return sub, nil
		}
	}
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusCanceled && sub.CurrentPeriodEnd.After(time.Now()) {
			return sub, nil
		}
	}
	for _, sub := range subs {
		if sub.PaymentStatus == entity.PaymentStatusPaid && sub.CurrentPeriodEnd.After(time.Now()) {
			return sub, nil
		}
	}
	return nil, nil
}
