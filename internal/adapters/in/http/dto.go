package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OrderItemRequest struct {
	DishID string `json:"dishId"`
	Qty    int    `json:"qty"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Items         []OrderItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type AvailabilityUpdateRequest struct {
	IngredientID string `json:"ingredientId"`
	Available    bool   `json:"available"`
}

type BulkUpdateAvailabilityRequest struct {
	Updates []AvailabilityUpdateRequest `json:"updates"`
}

type BulkUpdateAvailabilityResponse struct {
	Updated int `json:"updated"`
}

// SetIngredientExpiredRequest without a branch toggles the global flag.
type SetIngredientExpiredRequest struct {
	BranchID *string `json:"branchId,omitempty"`
	Expired  bool    `json:"expired"`
}

type SetDishAvailableRequest struct {
	Available bool `json:"available"`
}

type OrderItemResponse struct {
	DishID     string `json:"dishId"`
	Qty        int    `json:"qty"`
	PriceCents int64  `json:"priceCents"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	Number        int                 `json:"orderNumber"`
	BranchID      string              `json:"branchId"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Status        string              `json:"status"`
	Canceled      bool                `json:"canceled"`
	CancelReason  string              `json:"cancelReason,omitempty"`
	TotalCents    int64               `json:"totalCents"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Items         []OrderItemResponse `json:"items"`
}

type DishResponse struct {
	ID         string `json:"id"`
	MenuID     string `json:"menuId"`
	BranchID   string `json:"branchId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Available  bool   `json:"available"`
}

type MenuDishResponse struct {
	ID         string `json:"id"`
	MenuID     string `json:"menuId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Available  bool   `json:"available"`
}

type MenuResponse struct {
	BranchID   string             `json:"branchId"`
	BranchName string             `json:"branchName"`
	Dishes     []MenuDishResponse `json:"dishes"`
}

type IngredientAvailabilityResponse struct {
	IngredientID  string `json:"ingredientId"`
	BranchID      string `json:"branchId"`
	Name          string `json:"name"`
	Available     bool   `json:"available"`
	Override      *bool  `json:"override,omitempty"`
	Expired       bool   `json:"expired"`
	BranchExpired bool   `json:"branchExpired"`
}

type DishAvailabilityResponse struct {
	DishID    string `json:"dishId"`
	BranchID  string `json:"branchId"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func orderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemResponse{
			DishID:     it.DishID().String(),
			Qty:        it.Qty(),
			PriceCents: it.PriceCents(),
		})
	}

	return OrderResponse{
		ID:            o.ID().String(),
		Number:        o.Number().Value(),
		BranchID:      o.BranchID().String(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Status:        o.Status().String(),
		Canceled:      o.IsCanceled(),
		CancelReason:  o.CancelReason(),
		TotalCents:    o.TotalCents(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Items:         items,
	}
}

func orderListResponse(orders []queries.GetBranchOrdersQueryResponse) []OrderResponse {
	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemResponse{
				DishID:     it.DishID.String(),
				Qty:        it.Qty,
				PriceCents: it.PriceCents,
			})
		}
		res = append(res, OrderResponse{
			ID:            o.ID.String(),
			Number:        o.Number,
			BranchID:      o.BranchID.String(),
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Status:        o.Status.String(),
			Canceled:      o.Canceled,
			CancelReason:  o.CancelReason,
			TotalCents:    o.TotalCents,
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
			Items:         items,
		})
	}
	return res
}

func dishResponse(d *menu.Dish) DishResponse {
	return DishResponse{
		ID:         d.ID().String(),
		MenuID:     d.MenuID().String(),
		BranchID:   d.BranchID().String(),
		Name:       d.Name(),
		PriceCents: d.PriceCents(),
		Available:  d.IsAvailable(),
	}
}

func menuResponse(m queries.GetBranchMenuQueryResponse) MenuResponse {
	dishes := make([]MenuDishResponse, 0, len(m.Dishes))
	for _, d := range m.Dishes {
		dishes = append(dishes, MenuDishResponse{
			ID:         d.ID.String(),
			MenuID:     d.MenuID.String(),
			Name:       d.Name,
			PriceCents: d.PriceCents,
			Available:  d.Available,
		})
	}
	return MenuResponse{BranchID: m.BranchID.String(), BranchName: m.BranchName, Dishes: dishes}
}
