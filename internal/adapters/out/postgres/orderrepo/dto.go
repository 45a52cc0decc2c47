// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders and their line items are written together; the order number is unique
// across all branches.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// NumberIndex is the unique index guarding order numbers.
const NumberIndex = "idx_orders_number"

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number        int            `gorm:"type:int;not null;uniqueIndex:idx_orders_number"`
	BranchID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_branch_created,priority:1"`
	CustomerName  string         `gorm:"type:varchar(255);not null"`
	CustomerPhone string         `gorm:"type:varchar(32);not null"`
	Status        int            `gorm:"type:smallint;not null;index"`
	Canceled      bool           `gorm:"not null"`
	CancelReason  string         `gorm:"type:text;not null"`
	TotalCents    int64          `gorm:"type:bigint;not null"`
	CreatedAt     time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_orders_branch_created,priority:2"`
	UpdatedAt     time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order with its price snapshot.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"type:int;primaryKey"`
	DishID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Qty        int       `gorm:"type:int;not null"`
	PriceCents int64     `gorm:"type:bigint;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, it := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			DishID:     it.DishID().Bytes(),
			Qty:        it.Qty(),
			PriceCents: it.PriceCents(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		Number:        o.Number().Value(),
		BranchID:      o.BranchID().Bytes(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Status:        int(o.Status()),
		Canceled:      o.IsCanceled(),
		CancelReason:  o.CancelReason(),
		TotalCents:    o.TotalCents(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NewNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		dishID, itemErr := kernel.UUIDFromBytes(itemDTO.DishID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(dishID, itemDTO.Qty, itemDTO.PriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		number,
		branchID,
		dto.CustomerName,
		dto.CustomerPhone,
		items,
		dto.TotalCents,
		order.Status(dto.Status),
		dto.CancelReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
