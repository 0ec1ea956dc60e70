package schedules

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

	"github.com/heavyrent/backend/internal/rentals"
	"github.com/heavyrent/backend/internal/staff"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

func setupSchedulesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

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
	staffTable := `
CREATE TABLE IF NOT EXISTS staff (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff',
  created_at DATETIME,
  updated_at DATETIME
);`
	deliverySchedules := `
CREATE TABLE IF NOT EXISTS delivery_schedules (
  id TEXT PRIMARY KEY,
  rental_order_id TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  delivery_location TEXT,
  pickup_location TEXT,
  status TEXT NOT NULL DEFAULT 'scheduled',
  assigned_staff_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(rentalOrders).Error)
	require.NoError(t, conn.Exec(staffTable).Error)
	require.NoError(t, conn.Exec(deliverySchedules).Error)
	return conn
}

func newSchedulesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), rentals.NewRepository(conn), staff.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func seedOrder(t *testing.T, conn *gorm.DB, lifecycle enums.RentalStatus) *models.RentalOrder {
	t.Helper()

	order := &models.RentalOrder{
		ID:              uuid.New(),
		CustomerID:      uuid.New(),
		EquipmentID:     uuid.New(),
		RentalDate:      time.Now().Add(48 * time.Hour),
		TotalPrice:      decimal.NewFromInt(5000000),
		ApprovalStatus:  enums.ApprovalStatusApproved,
		LifecycleStatus: lifecycle,
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}

func seedDriver(t *testing.T, conn *gorm.DB) *models.Staff {
	t.Helper()

	member := &models.Staff{
		ID:           uuid.New(),
		Name:         "Delivery Crew",
		Email:        uuid.NewString() + "@heavyrent.test",
		PasswordHash: "x",
		Role:         enums.ActorRoleStaff,
	}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func strPtr(s string) *string { return &s }

func TestCreateScheduleHappyPath(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	driver := seedDriver(t, conn)

	start := time.Now().Add(24 * time.Hour)
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID:    order.ID,
		StartDate:        start,
		EndDate:          start.Add(6 * time.Hour),
		DeliveryLocation: strPtr("Jakarta site"),
		AssignedStaffID:  &driver.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusScheduled, schedule.Status)
	assert.Equal(t, order.ID, schedule.RentalOrderID)
	require.NotNil(t, schedule.AssignedStaffID)
	assert.Equal(t, driver.ID, *schedule.AssignedStaffID)
}

func TestCreateScheduleRejectsInvertedWindow(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(-time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateScheduleMissingOrder(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)

	start := time.Now()
	_, err := svc.Create(context.Background(), CreateInput{
		RentalOrderID: uuid.New(),
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateScheduleOnCancelledOrder(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)

	order := seedOrder(t, conn, enums.RentalStatusCancelled)
	start := time.Now()

	_, err := svc.Create(context.Background(), CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeInvalidState)
}

func TestCreateScheduleUnknownAssignee(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	unknown := uuid.New()
	start := time.Now()

	_, err := svc.Create(context.Background(), CreateInput{
		RentalOrderID:   order.ID,
		StartDate:       start,
		EndDate:         start.Add(time.Hour),
		AssignedStaffID: &unknown,
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateScheduleMovesToInProgress(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now().Add(24 * time.Hour)
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	driver := seedDriver(t, conn)
	inProgress := enums.ScheduleStatusInProgress
	updated, err := svc.Update(ctx, schedule.ID, UpdateInput{
		AssignedStaffID: &driver.ID,
		Status:          &inProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusInProgress, updated.Status)

	var reloaded models.DeliverySchedule
	require.NoError(t, conn.First(&reloaded, "id = ?", schedule.ID).Error)
	assert.Equal(t, enums.ScheduleStatusInProgress, reloaded.Status)
	require.NotNil(t, reloaded.AssignedStaffID)
	assert.Equal(t, driver.ID, *reloaded.AssignedStaffID)
}

func TestUpdateScheduleRejectsSkippedTransition(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now()
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	// scheduled deliveries cannot jump straight to completed
	completed := enums.ScheduleStatusCompleted
	_, err = svc.Update(ctx, schedule.ID, UpdateInput{Status: &completed})
	assertCode(t, err, pkgerrors.CodeInvalidState)
}

func TestUpdateClosedScheduleFails(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now()
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	cancelled := enums.ScheduleStatusCancelled
	_, err = svc.Update(ctx, schedule.ID, UpdateInput{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.Update(ctx, schedule.ID, UpdateInput{PickupLocation: strPtr("Depot B")})
	assertCode(t, err, pkgerrors.CodeInvalidState)
}

func TestDeleteScheduleOnlyWhileScheduled(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now()
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	inProgress := enums.ScheduleStatusInProgress
	_, err = svc.Update(ctx, schedule.ID, UpdateInput{Status: &inProgress})
	require.NoError(t, err)

	err = svc.Delete(ctx, schedule.ID)
	assertCode(t, err, pkgerrors.CodeInvalidState)
}

func TestDeleteScheduleHappyPath(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	start := time.Now()
	schedule, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     start,
		EndDate:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, schedule.ID))

	_, err = svc.Get(ctx, schedule.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListByOrderSortsByStart(t *testing.T) {
	conn := setupSchedulesTestDB(t)
	svc := newSchedulesService(t, conn)
	ctx := context.Background()

	order := seedOrder(t, conn, enums.RentalStatusInDelivery)
	base := time.Now().Add(24 * time.Hour)

	late, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     base.Add(48 * time.Hour),
		EndDate:       base.Add(52 * time.Hour),
	})
	require.NoError(t, err)
	early, err := svc.Create(ctx, CreateInput{
		RentalOrderID: order.ID,
		StartDate:     base,
		EndDate:       base.Add(4 * time.Hour),
	})
	require.NoError(t, err)

	rows, err := svc.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, early.ID, rows[0].ID)
	assert.Equal(t, late.ID, rows[1].ID)
}
