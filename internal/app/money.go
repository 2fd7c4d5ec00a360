package app

import "github.com/Suya12/cloud-computing-project/internal/domain"

// Tip split rule. Shared: the creator fronts the entire delivery tip when the
// order is opened and the joiner pays items only. Individual: the tip is
// halved, the creator absorbing the odd won.

func creatorCharge(itemsTotal, tip int, split domain.SplitType) int {
	if split == domain.SplitShared {
		return itemsTotal + tip
	}
	return itemsTotal + tip - tip/2
}

func joinerCharge(itemsTotal, tip int, split domain.SplitType) int {
	if split == domain.SplitShared {
		return itemsTotal
	}
	return itemsTotal + tip/2
}
