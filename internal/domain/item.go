package domain

// Item is a quantity of a single stock-keeping unit, identified by UPC.
// The same shape is used for requested quantities, warehouse stock rows and
// the contents of a shipment.
type Item struct {
	UPC   int
	Stock int
}

// CloneItems returns an independent copy of an item list so allocation can
// decrement quantities without aliasing the caller's slice.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
