package queries

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBranchOrdersQueryHandler reads orders straight from the orders and
// order_items tables. Authorization uses ViewOrders against the filter's branch.
type GetBranchOrdersQueryHandler struct {
	db    *gorm.DB
	guard services.AccessGuard
}

func NewGetBranchOrdersQueryHandler(db *gorm.DB) GetBranchOrdersQueryHandler {
	return GetBranchOrdersQueryHandler{db: db, guard: services.NewAccessGuard()}
}

func (h GetBranchOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBranchOrdersQuery,
) ([]GetBranchOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	if err := h.guard.Authorize(query.Principal(), &filter.BranchID, access.ViewOrders); err != nil {
		return nil, err
	}

	orders, err := h.listOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetBranchOrdersQueryHandler) listOrders(
	ctx context.Context,
	filter OrderFilter,
) ([]GetBranchOrdersQueryResponse, error) {
	tx := h.db.WithContext(ctx).
		Table("orders").
		Select(`id, number, branch_id, customer_name, customer_phone, status,
			canceled, cancel_reason, total_cents, created_at, updated_at`).
		Where("branch_id = ?", filter.BranchID.Bytes())

	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.Canceled != nil {
		tx = tx.Where("canceled = ?", *filter.Canceled)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at < ?", filter.CreatedTo.UTC())
	}

	rows, err := tx.Order("created_at DESC").Order("number").
		Limit(filter.Limit).Offset(filter.Offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetBranchOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp               GetBranchOrdersQueryResponse
			id, branchID       uuid.UUID
			status             int
			createdAt, updated time.Time
		)
		if err = rows.Scan(
			&id,
			&resp.Number,
			&branchID,
			&resp.CustomerName,
			&resp.CustomerPhone,
			&status,
			&resp.Canceled,
			&resp.CancelReason,
			&resp.TotalCents,
			&createdAt,
			&updated,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BranchID, err = kernel.UUIDFromBytes(branchID[:]); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		resp.CreatedAt = createdAt.UTC()
		resp.UpdatedAt = updated.UTC()
		resp.Items = make([]OrderItemResponse, 0)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetBranchOrdersQueryHandler) attachItems(ctx context.Context, orders []GetBranchOrdersQueryResponse) error {
	index := make(map[kernel.UUID]int, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids = append(ids, o.ID.Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			dish_id,
			qty,
			price_cents
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item            OrderItemResponse
			orderID, dishID uuid.UUID
		)
		if err = rows.Scan(&orderID, &dishID, &item.Qty, &item.PriceCents); err != nil {
			return err
		}

		oid, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return err
		}
		if item.DishID, err = kernel.UUIDFromBytes(dishID[:]); err != nil {
			return err
		}
		i := index[oid]
		orders[i].Items = append(orders[i].Items, item)
	}

	return rows.Err()
}
