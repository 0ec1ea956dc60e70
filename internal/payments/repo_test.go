package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	payments := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  rental_order_id TEXT NOT NULL,
  paid_at DATETIME NOT NULL,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'awaiting_verification',
  verified_by TEXT,
  verified_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(payments).Error)
	return conn
}

func seedPayment(t *testing.T, conn *gorm.DB, orderID uuid.UUID, amount int64, status enums.PaymentStatus) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		ID:            uuid.New(),
		RentalOrderID: orderID,
		PaidAt:        time.Now(),
		Amount:        decimal.NewFromInt(amount),
		Method:        enums.PaymentMethodBankTransfer,
		Status:        status,
	}
	require.NoError(t, conn.Create(payment).Error)
	return payment
}

func TestPaymentsRepoSumSettledByOrder(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	orderID := uuid.New()
	seedPayment(t, conn, orderID, 1000, enums.PaymentStatusSettled)
	seedPayment(t, conn, orderID, 2500, enums.PaymentStatusSettled)
	seedPayment(t, conn, orderID, 9999, enums.PaymentStatusAwaitingVerification)
	seedPayment(t, conn, uuid.New(), 500, enums.PaymentStatusSettled)

	total, err := repo.SumSettledByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(3500)), "got %s", total)
}

func TestPaymentsRepoSumSettledEmpty(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)

	total, err := repo.SumSettledByOrder(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestPaymentsRepoUpdateStatusWhereGuards(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	payment := seedPayment(t, conn, uuid.New(), 1000, enums.PaymentStatusAwaitingVerification)

	affected, err := repo.UpdateStatusWhere(ctx, payment.ID, enums.PaymentStatusAwaitingVerification, map[string]any{
		"status": enums.PaymentStatusSettled,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateStatusWhere(ctx, payment.ID, enums.PaymentStatusAwaitingVerification, map[string]any{
		"status": enums.PaymentStatusSettled,
	})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestPaymentsRepoListByOrder(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	orderID := uuid.New()
	seedPayment(t, conn, orderID, 1000, enums.PaymentStatusSettled)
	seedPayment(t, conn, orderID, 2000, enums.PaymentStatusAwaitingVerification)
	seedPayment(t, conn, uuid.New(), 3000, enums.PaymentStatusSettled)

	list, err := repo.ListByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
