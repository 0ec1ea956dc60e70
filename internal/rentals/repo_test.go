package rentals

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

	"github.com/heavyrent/backend/pkg/db"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	"github.com/heavyrent/backend/pkg/pagination"
)

func setupRentalsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	equipment := `
CREATE TABLE IF NOT EXISTS equipment (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  capacity TEXT,
  daily_rate NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'available',
  description TEXT,
  location TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	rentalOrders := `
CREATE TABLE IF NOT EXISTS rental_orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  equipment_id TEXT NOT NULL,
  rental_date DATETIME NOT NULL,
  return_date DATETIME,
  total_price NUMERIC NOT NULL,
  approval_status TEXT NOT NULL DEFAULT 'pending',
  lifecycle_status TEXT NOT NULL DEFAULT 'awaiting_approval',
  rejection_reason TEXT,
  approved_by TEXT,
  approved_at DATETIME,
  project_name TEXT,
  project_location TEXT,
  rating INTEGER,
  review TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	documents := `
CREATE TABLE IF NOT EXISTS documents (
  id TEXT PRIMARY KEY,
  rental_order_id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  storage_path TEXT NOT NULL,
  size_bytes INTEGER NOT NULL,
  uploaded_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
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
	require.NoError(t, conn.Exec(equipment).Error)
	require.NoError(t, conn.Exec(rentalOrders).Error)
	require.NoError(t, conn.Exec(documents).Error)
	require.NoError(t, conn.Exec(payments).Error)
	return conn
}

func newEquipment(t *testing.T, conn *gorm.DB, status enums.EquipmentStatus) *models.Equipment {
	t.Helper()

	unit := &models.Equipment{
		ID:        uuid.New(),
		Name:      "Excavator PC200",
		Category:  "excavator",
		DailyRate: decimal.NewFromInt(2500000),
		Status:    status,
	}
	require.NoError(t, conn.Create(unit).Error)
	return unit
}

func newOrder(t *testing.T, conn *gorm.DB, customerID uuid.UUID, unit *models.Equipment, created time.Time, lifecycle enums.RentalStatus, approval enums.ApprovalStatus) *models.RentalOrder {
	t.Helper()

	order := &models.RentalOrder{
		ID:              uuid.New(),
		CustomerID:      customerID,
		EquipmentID:     unit.ID,
		RentalDate:      created.Add(24 * time.Hour),
		TotalPrice:      decimal.NewFromInt(5000000),
		ApprovalStatus:  approval,
		LifecycleStatus: lifecycle,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)
	created, err := repo.Create(ctx, &models.RentalOrder{
		CustomerID:      uuid.New(),
		EquipmentID:     unit.ID,
		RentalDate:      time.Now().Add(48 * time.Hour),
		TotalPrice:      decimal.NewFromInt(7500000),
		ApprovalStatus:  enums.ApprovalStatusPending,
		LifecycleStatus: enums.RentalStatusAwaitingApproval,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, enums.RentalStatusAwaitingApproval, found.LifecycleStatus)
	assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(7500000)))
}

func TestRepositoryFindDetailPreloadsRelations(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusRented)
	order := newOrder(t, conn, uuid.New(), unit, time.Now(), enums.RentalStatusInDelivery, enums.ApprovalStatusApproved)

	require.NoError(t, conn.Create(&models.Document{
		ID:            uuid.New(),
		RentalOrderID: order.ID,
		Name:          "ktp.pdf",
		Type:          enums.DocumentTypeIdentityCard,
		StoragePath:   "abc_ktp.pdf",
		SizeBytes:     1024,
		UploadedBy:    order.CustomerID,
	}).Error)
	require.NoError(t, conn.Create(&models.Payment{
		ID:            uuid.New(),
		RentalOrderID: order.ID,
		PaidAt:        time.Now(),
		Amount:        decimal.NewFromInt(2500000),
		Method:        enums.PaymentMethodBankTransfer,
		Status:        enums.PaymentStatusSettled,
	}).Error)

	detail, err := repo.FindDetail(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Equipment)
	assert.Len(t, detail.Documents, 1)
	assert.Len(t, detail.Payments, 1)
}

func TestRepositoryFindMissingOrder(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.Find(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByCustomerPaginates(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)
	customerID := uuid.New()
	base := time.Now().Add(-10 * time.Hour).UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		newOrder(t, conn, customerID, unit, base.Add(time.Duration(i)*time.Hour), enums.RentalStatusAwaitingApproval, enums.ApprovalStatusPending)
	}
	// another customer's order must not leak into the list
	newOrder(t, conn, uuid.New(), unit, base, enums.RentalStatusAwaitingApproval, enums.ApprovalStatusPending)

	page1, err := repo.ListByCustomer(ctx, customerID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Orders, 2)
	require.NotEmpty(t, page1.NextCursor)
	assert.True(t, page1.Orders[0].CreatedAt.After(page1.Orders[1].CreatedAt))

	page2, err := repo.ListByCustomer(ctx, customerID, pagination.Params{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Orders, 1)
	assert.Empty(t, page2.NextCursor)
}

func TestRepositoryListPendingApprovals(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)
	pending := newOrder(t, conn, uuid.New(), unit, time.Now().Add(-time.Hour), enums.RentalStatusAwaitingApproval, enums.ApprovalStatusPending)
	newOrder(t, conn, uuid.New(), unit, time.Now(), enums.RentalStatusInDelivery, enums.ApprovalStatusApproved)

	list, err := repo.ListPendingApprovals(ctx, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, pending.ID, list.Orders[0].ID)
}

func TestRepositoryUpdateWhereLifecycleGuards(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)
	order := newOrder(t, conn, uuid.New(), unit, time.Now(), enums.RentalStatusAwaitingApproval, enums.ApprovalStatusPending)

	affected, err := repo.UpdateWhereLifecycle(ctx, order.ID, enums.RentalStatusAwaitingApproval, map[string]any{
		"lifecycle_status": enums.RentalStatusCancelled,
		"approval_status":  enums.ApprovalStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// the guard must not fire twice
	affected, err = repo.UpdateWhereLifecycle(ctx, order.ID, enums.RentalStatusAwaitingApproval, map[string]any{
		"lifecycle_status": enums.RentalStatusInDelivery,
	})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestEquipmentGateReserveAndRelease(t *testing.T) {
	conn := setupRentalsTestDB(t)
	gate := NewEquipmentGate()
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)

	ok, err := gate.Reserve(ctx, conn, unit.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// second reserve loses the guard
	ok, err = gate.Reserve(ctx, conn, unit.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Release(ctx, conn, unit.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	var reloaded models.Equipment
	require.NoError(t, conn.First(&reloaded, "id = ?", unit.ID).Error)
	assert.Equal(t, enums.EquipmentStatusAvailable, reloaded.Status)
}

func TestEquipmentGateExists(t *testing.T) {
	conn := setupRentalsTestDB(t)
	gate := NewEquipmentGate()
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)

	ok, err := gate.Exists(ctx, conn, unit.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Exists(ctx, conn, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

// Full approve-then-complete pass against a real database, exercising the
// transactional guards end to end.
func TestServiceLifecycleAgainstSQLite(t *testing.T) {
	conn := setupRentalsTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, &db.GormTxRunner{DB: conn}, NewEquipmentGate(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	unit := newEquipment(t, conn, enums.EquipmentStatusAvailable)
	customerID := uuid.New()

	order, err := svc.Create(ctx, CreateInput{
		CustomerID:  customerID,
		EquipmentID: unit.ID,
		RentalDate:  time.Now().Add(24 * time.Hour),
		TotalPrice:  decimal.NewFromInt(5000000),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RentalStatusAwaitingApproval, order.LifecycleStatus)

	approverID := uuid.New()
	approved, err := svc.Approve(ctx, order.ID, approverID)
	require.NoError(t, err)
	assert.Equal(t, enums.RentalStatusInDelivery, approved.LifecycleStatus)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approverID, *approved.ApprovedBy)

	var reloadedUnit models.Equipment
	require.NoError(t, conn.First(&reloadedUnit, "id = ?", unit.ID).Error)
	assert.Equal(t, enums.EquipmentStatusRented, reloadedUnit.Status)

	completed, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.RentalStatusCompleted, completed.LifecycleStatus)

	require.NoError(t, conn.First(&reloadedUnit, "id = ?", unit.ID).Error)
	assert.Equal(t, enums.EquipmentStatusAvailable, reloadedUnit.Status)

	require.NoError(t, svc.Rate(ctx, RateInput{OrderID: order.ID, Rating: 5}))
	reloaded, err := repo.Find(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, 5, *reloaded.Rating)
}
