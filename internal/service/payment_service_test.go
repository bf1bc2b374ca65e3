package service

import (
	"context"
	"testing"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"

	"github.com/google/uuid"
)

func TestMidtransSignature(t *testing.T) {
	// Known vector computed with: echo -n "order-1200100000.00secret" | sha512sum
	got := midtransSignature("order-1", "200", "100000.00", "secret")
	want := "00be399d44f9889a96b8ffc6263c89d3a58d62d6004a5607dad0504dbbef7d64b61ab0e18f8a6ef4fde1e5126e06130c6664f7c18116a9027c565bcfd3154ba0"

	if got != want {
		t.Errorf("signature = %s, want %s", got, want)
	}

	// Any change to the gross amount must produce a different signature.
	if midtransSignature("order-1", "200", "100000.01", "secret") == want {
		t.Error("signature did not change with gross amount")
	}
}

func TestGetOrderSummary(t *testing.T) {
	plan := &entity.SubscriptionPlan{
		Name:          "Pro Monthly",
		Price:         49000,
		TaxRate:       0.11,
		Currency:      "IDR",
		BillingPeriod: entity.BillingPeriodMonthly,
	}
	factory := &fakeFactory{uow: &fakeUow{subscriptions: &fakeSubscriptionRepo{plan: plan}}}
	svc := NewPaymentService(factory, nil, nil, nil)

	res, err := svc.GetOrderSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetOrderSummary: %v", err)
	}
	if res.Subtotal != 49000 {
		t.Errorf("subtotal = %v, want 49000", res.Subtotal)
	}
	if res.Tax != 49000*0.11 {
		t.Errorf("tax = %v, want %v", res.Tax, 49000*0.11)
	}
	if res.Total != res.Subtotal+res.Tax {
		t.Errorf("total = %v, want %v", res.Total, res.Subtotal+res.Tax)
	}
	if res.BillingPeriod != "monthly" || res.Currency != "IDR" {
		t.Errorf("period/currency = %s/%s, want monthly/IDR", res.BillingPeriod, res.Currency)
	}
}

func TestGetOrderSummaryUnknownPlan(t *testing.T) {
	factory := &fakeFactory{uow: &fakeUow{subscriptions: &fakeSubscriptionRepo{}}}
	svc := NewPaymentService(factory, nil, nil, nil)

	if _, err := svc.GetOrderSummary(context.Background(), uuid.New()); err == nil {
		t.Error("expected an error for a plan that does not exist")
	}
}

// Malformed webhook payloads are acknowledged and dropped rather than
// surfaced as errors, so the processor stops redelivering them.
func TestHandleNotificationDropsMalformedPayloads(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "secret")

	// Dependencies are never reached on these paths.
	svc := NewPaymentService(nil, nil, nil, nil)

	t.Run("signature mismatch", func(t *testing.T) {
		req := &dto.MidtransWebhookRequest{
			OrderId:           "order-1",
			StatusCode:        "200",
			GrossAmount:       "100000.00",
			TransactionStatus: "settlement",
			SignatureKey:      "not-the-signature",
		}
		if err := svc.HandleNotification(context.Background(), req); err != nil {
			t.Errorf("expected drop, got error: %v", err)
		}
	})

	t.Run("unparseable order id", func(t *testing.T) {
		req := &dto.MidtransWebhookRequest{
			OrderId:           "not-a-uuid",
			StatusCode:        "200",
			GrossAmount:       "100000.00",
			TransactionStatus: "settlement",
		}
		req.SignatureKey = midtransSignature(req.OrderId, req.StatusCode, req.GrossAmount, "secret")
		if err := svc.HandleNotification(context.Background(), req); err != nil {
			t.Errorf("expected drop, got error: %v", err)
		}
	})

	t.Run("missing server key is a server fault", func(t *testing.T) {
		t.Setenv("MIDTRANS_SERVER_KEY", "")
		req := &dto.MidtransWebhookRequest{OrderId: "order-1"}
		if err := svc.HandleNotification(context.Background(), req); err == nil {
			t.Error("expected configuration error to propagate")
		}
	})
}
