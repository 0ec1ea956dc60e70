package maintenance

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

	"github.com/heavyrent/backend/internal/equipment"
	"github.com/heavyrent/backend/pkg/db"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

func setupMaintenanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	equipmentDDL := `
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
	records := `
CREATE TABLE IF NOT EXISTS maintenance_records (
  id TEXT PRIMARY KEY,
  equipment_id TEXT NOT NULL,
  scheduled_at DATETIME NOT NULL,
  description TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled',
  finished_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(equipmentDDL).Error)
	require.NoError(t, conn.Exec(records).Error)
	return conn
}

func newService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), equipment.NewRepository(conn), &db.GormTxRunner{DB: conn})
	require.NoError(t, err)
	return svc
}

func seedUnit(t *testing.T, conn *gorm.DB, status enums.EquipmentStatus) *models.Equipment {
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

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func TestScheduleFlipsEquipmentToMaintenance(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)
	ctx := context.Background()

	unit := seedUnit(t, conn, enums.EquipmentStatusAvailable)

	record, err := svc.Schedule(ctx, ScheduleInput{
		EquipmentID: unit.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Description: "hydraulic service",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusScheduled, record.Status)

	var reloaded models.Equipment
	require.NoError(t, conn.First(&reloaded, "id = ?", unit.ID).Error)
	assert.Equal(t, enums.EquipmentStatusMaintenance, reloaded.Status)
}

func TestScheduleRejectsBusyEquipment(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)
	ctx := context.Background()

	unit := seedUnit(t, conn, enums.EquipmentStatusRented)

	_, err := svc.Schedule(ctx, ScheduleInput{
		EquipmentID: unit.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Description: "hydraulic service",
	})
	assertCode(t, err, pkgerrors.CodeConflict)

	// rollback left no record behind
	var count int64
	require.NoError(t, conn.Model(&models.MaintenanceRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestScheduleMissingEquipment(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)

	_, err := svc.Schedule(context.Background(), ScheduleInput{
		EquipmentID: uuid.New(),
		ScheduledAt: time.Now(),
		Description: "x",
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestFinishReleasesEquipment(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)
	ctx := context.Background()

	unit := seedUnit(t, conn, enums.EquipmentStatusAvailable)
	record, err := svc.Schedule(ctx, ScheduleInput{
		EquipmentID: unit.ID,
		ScheduledAt: time.Now(),
		Description: "track replacement",
	})
	require.NoError(t, err)

	finished, err := svc.Finish(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusFinished, finished.Status)
	assert.NotNil(t, finished.FinishedAt)

	var reloaded models.Equipment
	require.NoError(t, conn.First(&reloaded, "id = ?", unit.ID).Error)
	assert.Equal(t, enums.EquipmentStatusAvailable, reloaded.Status)
}

func TestFinishTwiceFails(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)
	ctx := context.Background()

	unit := seedUnit(t, conn, enums.EquipmentStatusAvailable)
	record, err := svc.Schedule(ctx, ScheduleInput{
		EquipmentID: unit.ID,
		ScheduledAt: time.Now(),
		Description: "track replacement",
	})
	require.NoError(t, err)

	_, err = svc.Finish(ctx, record.ID)
	require.NoError(t, err)

	_, err = svc.Finish(ctx, record.ID)
	assertCode(t, err, pkgerrors.CodeInvalidState)
}

func TestListByEquipment(t *testing.T) {
	conn := setupMaintenanceTestDB(t)
	svc := newService(t, conn)
	ctx := context.Background()

	unit := seedUnit(t, conn, enums.EquipmentStatusAvailable)
	record, err := svc.Schedule(ctx, ScheduleInput{
		EquipmentID: unit.ID,
		ScheduledAt: time.Now(),
		Description: "inspection",
	})
	require.NoError(t, err)

	records, err := svc.ListByEquipment(ctx, unit.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}
