package mysql

import (
	"context"
	"fmt"

	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/mysql/po"
	"restaurant/infrastructure/persistence/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	conn
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{conn: conn{db: db}}
}

var orderSortColumns = map[order.SortField]string{
	order.SortByStatus:      "status",
	order.SortByTotalPrice:  "total_price",
	order.SortByCreatedAt:   "created_at",
	order.SortByAcceptedAt:  "accepted_at",
	order.SortByDeliveredAt: "delivered_at",
	order.SortByReceivedAt:  "received_at",
}

// GetOrCreateSingleton INSERT ... ON DUPLICATE KEY UPDATE id = id，然后按 singleton_key 读回
func (r *OrderRepository) GetOrCreateSingleton(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	key := candidate.SingletonKey()
	if key == "" {
		return nil, order.NewWrongRoleError("get-or-create", candidate.Role())
	}

	orderPO := po.FromOrderDomain(candidate)
	orderPO.Version = 1
	err := r.getDB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(orderPO).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s: %w", key, err)
	}

	return r.findByKey(ctx, key)
}

func (r *OrderRepository) FindSingleton(ctx context.Context, userID string, role order.Role) (*order.Order, error) {
	return r.findByKey(ctx, order.SingletonKey(userID, role))
}

func (r *OrderRepository) findByKey(ctx context.Context, key string) (*order.Order, error) {
	var orderPO po.OrderPO
	if err := r.getDB(ctx).First(&orderPO, "singleton_key = ?", key).Error; err != nil {
		if isNotFound(err) {
			return nil, order.NewOrderNotFoundError(key)
		}
		return nil, err
	}
	return orderPO.ToDomain(), nil
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO := po.FromOrderDomain(o)

	if o.IsNew() {
		orderPO.Version = 1
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		o.IncrementVersionForSave()
		return nil
	}

	expectedVersion := o.Version()

	// 严格乐观锁：必须使用聚合当前版本作为更新条件，避免静默覆盖并发写入。
	result := tx.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), expectedVersion).
		Updates(map[string]any{
			"user_id":       orderPO.UserID,
			"status":        orderPO.Status,
			"total_price":   orderPO.TotalPrice,
			"accepted_at":   orderPO.AcceptedAt,
			"delivered_at":  orderPO.DeliveredAt,
			"received_at":   orderPO.ReceivedAt,
			"singleton_key": orderPO.SingletonKey,
			"version":       expectedVersion + 1,
			"updated_at":    orderPO.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.NewOrderNotFoundError(o.ID())
		}
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var orderPO po.OrderPO
	if err := r.getDB(ctx).First(&orderPO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}
	return orderPO.ToDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, criteria order.ListCriteria) ([]*order.Order, int64, error) {
	query, err := specification.Apply(r.getDB(ctx).Model(&po.OrderPO{}), criteria.Spec, orderRule)
	if err != nil {
		return nil, 0, err
	}

	column, ok := orderSortColumns[criteria.SortBy]
	if !ok {
		column = "created_at"
	}
	rows, total, err := paginate[po.OrderPO](query, criteria.Page, orderBy(column, criteria.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

// Remove 软删除并释放 singleton_key，下次访问会懒创建新的购物车/收藏夹
func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&po.OrderPO{}).Where("id = ?", id).Update("singleton_key", nil)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewOrderNotFoundError(id)
		}
		return tx.Delete(&po.OrderPO{}, "id = ?", id).Error
	})
}

func orderRule(spec shared.Specification[*order.Order]) (clause.Expression, bool) {
	switch s := spec.(type) {
	case order.ByUserIDSpec:
		return clause.Eq{Column: clause.Column{Name: "user_id"}, Value: s.UserID}, true
	case order.ByStatusSpec:
		return clause.Eq{Column: clause.Column{Name: "status"}, Value: string(s.Status)}, true
	case order.RealOrdersSpec:
		return clause.Not(clause.IN{
			Column: clause.Column{Name: "status"},
			Values: []any{string(order.StatusDraft), string(order.StatusFavourites)},
		}), true
	}
	return nil, false
}

var _ order.Repository = (*OrderRepository)(nil)
