package mysql

import (
	"context"
	"errors"

	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const mysqlDuplicateEntry = 1062

// conn 各仓储共用：优先使用 UoW 放进 context 的事务
type conn struct {
	db *gorm.DB
}

func (c conn) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}

// inTx 已在 UoW 事务中则直接执行，否则开启独立事务
func (c conn) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return c.db.WithContext(ctx).Transaction(fn)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// orderBy 列名来自白名单映射，不拼接用户输入
func orderBy(column string, order shared.SortOrder) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   order == shared.SortDesc,
	}
}

// paginate 统计总数后取当前页
func paginate[P any](query *gorm.DB, page shared.Page, sort clause.OrderByColumn) ([]P, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []P
	err := query.
		Order(sort).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
