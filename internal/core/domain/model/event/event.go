// Package event defines the realtime notifications emitted by the ordering
// core: their names, the per-branch topic they are published on and their
// payload shapes.
package event

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// Name identifies an event kind on the wire.
type Name string

const (
	NewOrder                     Name = "new-order"
	OrderStatusUpdate            Name = "order-status-update"
	IngredientAvailabilityUpdate Name = "ingredient-availability-update"
)

const topicPrefix = "branch-"

// Topic is the per-branch subscriber group, "branch-<branchId>".
func Topic(branchID kernel.UUID) string {
	return topicPrefix + branchID.String()
}

// Event is a notification ready for publishing.
type Event struct {
	Topic   string
	Name    Name
	Payload any
}

// Envelope is the wire form shared by every transport.
type Envelope struct {
	Event   Name   `json:"event"`
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

func NewEnvelope(topic string, name Name, payload any) Envelope {
	return Envelope{Event: name, Topic: topic, Payload: payload}
}

type NewOrderPayload struct {
	OrderID     string    `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	UserName    string    `json:"userName"`
	UserPhone   string    `json:"userPhone"`
	TotalCents  int64     `json:"totalCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OrderStatusUpdatePayload struct {
	OrderID     string    `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	Status      string    `json:"status"`
	BranchID    string    `json:"branchId"`
	Timestamp   time.Time `json:"timestamp"`
}

type IngredientAvailabilityUpdatePayload struct {
	IngredientID string    `json:"ingredientId"`
	BranchID     string    `json:"branchId"`
	Available    bool      `json:"available"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewOrderCreated(o *order.Order) Event {
	return Event{
		Topic: Topic(o.BranchID()),
		Name:  NewOrder,
		Payload: NewOrderPayload{
			OrderID:     o.ID().String(),
			OrderNumber: o.Number().Value(),
			UserName:    o.CustomerName(),
			UserPhone:   o.CustomerPhone(),
			TotalCents:  o.TotalCents(),
			Status:      o.Status().String(),
			CreatedAt:   o.CreatedAt(),
		},
	}
}

func NewOrderStatusUpdated(o *order.Order) Event {
	return Event{
		Topic: Topic(o.BranchID()),
		Name:  OrderStatusUpdate,
		Payload: OrderStatusUpdatePayload{
			OrderID:     o.ID().String(),
			OrderNumber: o.Number().Value(),
			Status:      o.Status().String(),
			BranchID:    o.BranchID().String(),
			Timestamp:   o.UpdatedAt(),
		},
	}
}

func NewIngredientAvailabilityUpdated(ingredientID, branchID kernel.UUID, available bool, at time.Time) Event {
	return Event{
		Topic: Topic(branchID),
		Name:  IngredientAvailabilityUpdate,
		Payload: IngredientAvailabilityUpdatePayload{
			IngredientID: ingredientID.String(),
			BranchID:     branchID.String(),
			Available:    available,
			Timestamp:    at.UTC(),
		},
	}
}
