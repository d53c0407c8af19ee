package cart

import "github.com/shopspring/decimal"

func withSubtotal(item CartItem) CartItem {
	item.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item
}

// newCartDetails sums quantities and subtotals of items.
func newCartDetails(userID uint, items []CartItem) *CartDetails {
	details := &CartDetails{
		UserID:     userID,
		Items:      make([]CartItem, 0, len(items)),
		TotalPrice: decimal.Zero,
	}

	for _, it := range items {
		it = withSubtotal(it)
		details.Items = append(details.Items, it)
		details.TotalQuantity += it.Quantity
		details.TotalPrice = details.TotalPrice.Add(it.Subtotal)
	}

	return details
}
