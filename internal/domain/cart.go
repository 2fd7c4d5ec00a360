package domain

// CartItem is a staged menu selection prior to order commitment. A user holds
// at most one active cart, and all of its items come from a single store.
type CartItem struct {
	UserID   string
	StoreID  string
	MenuID   string
	MenuName string
	Price    int
}
