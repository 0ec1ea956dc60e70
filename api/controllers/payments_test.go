package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/internal/payments"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

type testPaymentsService struct {
	recordFn func(ctx context.Context, input payments.RecordInput) (*models.Payment, error)
	verifyFn func(ctx context.Context, paymentID, verifierID uuid.UUID) (*models.Payment, error)
}

func (s *testPaymentsService) Record(ctx context.Context, input payments.RecordInput) (*models.Payment, error) {
	if s.recordFn != nil {
		return s.recordFn(ctx, input)
	}
	return &models.Payment{ID: uuid.New()}, nil
}

func (s *testPaymentsService) Verify(ctx context.Context, paymentID, verifierID uuid.UUID) (*models.Payment, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, paymentID, verifierID)
	}
	return &models.Payment{ID: paymentID, Status: enums.PaymentStatusSettled}, nil
}

func (s *testPaymentsService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

func (s *testPaymentsService) SumSettledByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func TestRecordPaymentSuccess(t *testing.T) {
	orderID := uuid.New()
	var gotInput payments.RecordInput
	svc := &testPaymentsService{
		recordFn: func(ctx context.Context, input payments.RecordInput) (*models.Payment, error) {
			gotInput = input
			return &models.Payment{ID: uuid.New(), Status: enums.PaymentStatusAwaitingVerification}, nil
		},
	}

	body := `{"amount": "500000", "method": "bank_transfer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/"+orderID.String()+"/payments", strings.NewReader(body))
	req = addRouteParam(req, "rentalId", orderID.String())
	rec := httptest.NewRecorder()
	RecordPayment(svc, controllerTestLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.OrderID != orderID {
		t.Fatalf("unexpected order %s", gotInput.OrderID)
	}
	if gotInput.Method != "bank_transfer" {
		t.Fatalf("unexpected method %q", gotInput.Method)
	}
}

func TestRecordPaymentMissingMethod(t *testing.T) {
	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/"+orderID.String()+"/payments", strings.NewReader(`{"amount": "500000"}`))
	req = addRouteParam(req, "rentalId", orderID.String())
	rec := httptest.NewRecorder()
	RecordPayment(&testPaymentsService{}, controllerTestLogger())(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}

func TestVerifyPaymentUsesActor(t *testing.T) {
	paymentID := uuid.New()
	staffID := uuid.New()
	var gotVerifier uuid.UUID
	svc := &testPaymentsService{
		verifyFn: func(ctx context.Context, pid, vid uuid.UUID) (*models.Payment, error) {
			gotVerifier = vid
			return &models.Payment{ID: pid, Status: enums.PaymentStatusSettled}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID.String()+"/verify", nil)
	req = addRouteParam(req, "paymentId", paymentID.String())
	req = withActor(req, staffID)
	rec := httptest.NewRecorder()
	VerifyPayment(svc, controllerTestLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if gotVerifier != staffID {
		t.Fatalf("unexpected verifier %s", gotVerifier)
	}
}

func TestVerifyPaymentAlreadySettled(t *testing.T) {
	paymentID := uuid.New()
	svc := &testPaymentsService{
		verifyFn: func(ctx context.Context, pid, vid uuid.UUID) (*models.Payment, error) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "payment is not awaiting verification")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID.String()+"/verify", nil)
	req = addRouteParam(req, "paymentId", paymentID.String())
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()
	VerifyPayment(svc, controllerTestLogger())(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
