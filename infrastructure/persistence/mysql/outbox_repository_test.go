package mysql

import (
	"testing"

	"restaurant/domain/booking"
	"restaurant/domain/order"
	"restaurant/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB 只生成 SQL，不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "restaurant:restaurant@tcp(127.0.0.1:3306)/restaurant?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestOutboxRepository_PendingQuery(t *testing.T) {
	db := dryRunDB(t)
	repo := NewOutboxRepository(db)

	all := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(repo.pending(10)).Find(&[]*po.OutboxEventPO{})
	})
	assert.Contains(t, all, "status = 'PENDING'")
	assert.Contains(t, all, "ORDER BY created_at ASC, id ASC")
	assert.Contains(t, all, "LIMIT 10")
	assert.NotContains(t, all, "event_type")

	orders := repo.ForEventTypes(order.EventOrderCreated, "", order.EventOrderCheckedOut)
	scoped := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(orders.pending(5)).Find(&[]*po.OutboxEventPO{})
	})
	assert.Contains(t, scoped, "event_type IN ('order.created','order.checked_out')")
	assert.Contains(t, scoped, "LIMIT 5")
	assert.NotContains(t, scoped, booking.EventBookingCreated)

	// 原仓储不受影响
	assert.Empty(t, repo.eventTypes)
}

func TestOutboxRepository_ClaimIsConditional(t *testing.T) {
	db := dryRunDB(t)
	repo := NewOutboxRepository(db)

	claim := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.transition(tx, "e1", po.EventStatusPending, po.EventStatusProcessing)
	})
	assert.Contains(t, claim, "UPDATE `outbox_events`")
	assert.Contains(t, claim, "`status`='PROCESSING'")
	assert.Contains(t, claim, "id = 'e1' AND status = 'PENDING'")

	publish := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.transition(tx, "e1", po.EventStatusProcessing, po.EventStatusPublished)
	})
	assert.Contains(t, publish, "`status`='PUBLISHED'")
	assert.Contains(t, publish, "status = 'PROCESSING'")
}

func TestOutboxRepository_FailureCountsInOneStatement(t *testing.T) {
	db := dryRunDB(t)
	repo := NewOutboxRepository(db)

	stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.failed(tx, "e2", 3)
	})
	assert.Contains(t, stmt, "status = CASE WHEN retry_count + 1 >= 3 THEN 'FAILED' ELSE 'PENDING' END")
	assert.Contains(t, stmt, "retry_count = retry_count + 1")
	assert.Contains(t, stmt, "WHERE id = 'e2'")
}
