package access

// Action names an operation checked by the access guard.
type Action string

const (
	CreateOrder         Action = "create_order"
	UpdateOrderStatus   Action = "update_order_status"
	CancelOrder         Action = "cancel_order"
	ViewOrders          Action = "view_orders"
	UpdateAvailability  Action = "update_availability"
	SetBranchExpiration Action = "set_branch_expiration"
	SetDishAvailability Action = "set_dish_availability"
	SubscribeBranch     Action = "subscribe_branch"

	// ManageCatalog covers global catalog changes such as the global expired flag.
	ManageCatalog Action = "manage_catalog"
)

// RequiresBranch reports whether the action is scoped to a single branch.
func (a Action) RequiresBranch() bool {
	return a != ManageCatalog
}

func (a Action) String() string {
	return string(a)
}
