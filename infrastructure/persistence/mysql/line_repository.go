package mysql

import (
	"context"

	"restaurant/domain/order"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// LineRepository 订单行仓储；行是硬删除的
type LineRepository struct {
	conn
}

func NewLineRepository(db *gorm.DB) *LineRepository {
	return &LineRepository{conn: conn{db: db}}
}

func (r *LineRepository) FindByOrderID(ctx context.Context, orderID string) ([]*order.Line, error) {
	var rows []po.OrderLinePO
	err := r.getDB(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

func (r *LineRepository) FindByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]*order.Line, error) {
	result := make(map[string][]*order.Line, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	var rows []po.OrderLinePO
	err := r.getDB(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		line := rows[i].ToDomain()
		result[line.OrderID()] = append(result[line.OrderID()], line)
	}
	return result, nil
}

func (r *LineRepository) FindInOrder(ctx context.Context, orderID, lineID string) (*order.Line, error) {
	var row po.OrderLinePO
	err := r.getDB(ctx).First(&row, "id = ? AND order_id = ?", lineID, orderID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.NewLineNotFoundError("order line", lineID)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *LineRepository) FindByProduct(ctx context.Context, orderID, productID string) (*order.Line, error) {
	var row po.OrderLinePO
	err := r.getDB(ctx).First(&row, "order_id = ? AND product_id = ?", orderID, productID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.NewLineNotFoundError("order line", productID)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *LineRepository) Save(ctx context.Context, line *order.Line) error {
	row := po.FromLineDomain(line)
	db := r.getDB(ctx)

	if line.IsNew() {
		if err := db.Create(row).Error; err != nil {
			if isDuplicateKeyError(err) {
				return order.NewDuplicateLineError(line.OrderID(), line.ProductID())
			}
			return err
		}
		line.MarkPersisted()
		return nil
	}

	result := db.Model(&po.OrderLinePO{}).
		Where("id = ? AND order_id = ?", line.ID(), line.OrderID()).
		Updates(map[string]any{
			"quantity":   row.Quantity,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewLineNotFoundError("order line", line.ID())
	}
	return nil
}

func (r *LineRepository) Remove(ctx context.Context, orderID, lineID string) error {
	result := r.getDB(ctx).Delete(&po.OrderLinePO{}, "id = ? AND order_id = ?", lineID, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewLineNotFoundError("order line", lineID)
	}
	return nil
}

func (r *LineRepository) RemoveAll(ctx context.Context, orderID string) (int64, error) {
	result := r.getDB(ctx).Delete(&po.OrderLinePO{}, "order_id = ?", orderID)
	return result.RowsAffected, result.Error
}

var _ order.LineRepository = (*LineRepository)(nil)
