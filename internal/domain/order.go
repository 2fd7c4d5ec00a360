package domain

import "time"

type OrderStatus string

const (
	OrderStatusWaiting   OrderStatus = "waiting"
	OrderStatusMatched   OrderStatus = "matched"
	OrderStatusExpired   OrderStatus = "expired"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type SplitType string

const (
	// SplitShared pools the dishes; the creator fronts the whole delivery tip.
	SplitShared SplitType = "shared"
	// SplitIndividual bills each participant for their own items plus half the tip.
	SplitIndividual SplitType = "individual"
)

func (s SplitType) Valid() bool {
	return s == SplitShared || s == SplitIndividual
}

// Order is a group order opened by one user and joined by at most one other.
type Order struct {
	ID               string
	CreatorID        string
	StoreID          string
	DeliveryLocation string
	DetailedLocation string
	DeliveryLat      *float64
	DeliveryLng      *float64
	SplitType        SplitType
	// OwnerPaidAmount is the creator's exact charge at creation time; refunds
	// on cancellation or expiry restore precisely this amount.
	OwnerPaidAmount int
	Status          OrderStatus
	CreatedAt       time.Time
	ExpiresAt       time.Time
	Items           []OrderItem
}

// OrderItem is a committed line item with the price snapshotted at commit time.
// Later catalog price changes never alter an existing order.
type OrderItem struct {
	OrderID  string
	UserID   string
	MenuID   string
	MenuName string
	Price    int
}

// ItemsTotal sums the committed item prices, excluding any tip share.
func (o Order) ItemsTotal() int {
	total := 0
	for _, it := range o.Items {
		total += it.Price
	}
	return total
}

// ParticipantIDs returns the distinct user ids across items, creator first.
func (o Order) ParticipantIDs() []string {
	seen := make(map[string]struct{}, 2)
	ids := make([]string, 0, 2)
	if o.CreatorID != "" {
		seen[o.CreatorID] = struct{}{}
		ids = append(ids, o.CreatorID)
	}
	for _, it := range o.Items {
		if _, ok := seen[it.UserID]; ok {
			continue
		}
		seen[it.UserID] = struct{}{}
		ids = append(ids, it.UserID)
	}
	return ids
}
