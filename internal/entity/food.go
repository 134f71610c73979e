package domain

// Restaurant is a browsable storefront. The catalog provider generates the
// list, so every field is treated as display data once fetched.
type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating"`
	Reviews      int     `json:"reviews"`
	DeliveryTime string  `json:"deliveryTime"`
	MinOrder     int64   `json:"minOrder"`
	Image        string  `json:"image"`
}

// MenuItem is immutable once fetched. ID is unique within one restaurant's
// menu only.
type MenuItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	RestaurantName string `json:"restaurantName"`
}

// CartItem keys on MenuItem.ID: the cart holds at most one entry per id.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

type OrderDetails struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
	OrderNotes      string `json:"orderNotes,omitempty"`
}

// OrderedItem is the persisted snapshot shape. Price and id are deliberately
// dropped; the confirmed order keeps its own totals.
type OrderedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ConfirmedOrder is created once per successful checkout and never mutated.
type ConfirmedOrder struct {
	OrderDetails
	OrderNumber           string        `json:"orderNumber"`
	EstimatedDeliveryTime string        `json:"estimatedDeliveryTime"`
	Items                 []OrderedItem `json:"items"`
	Subtotal              int64         `json:"subtotal"`
	ShippingFee           int64         `json:"shippingFee"`
	Total                 int64         `json:"total"`
}

// Subtotal sums price*quantity over the cart.
func Subtotal(items []CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Price * int64(it.Quantity)
	}
	return sum
}

// Snapshot reduces cart entries to the persisted {name, quantity} shape.
func Snapshot(items []CartItem) []OrderedItem {
	out := make([]OrderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderedItem{Name: it.Name, Quantity: it.Quantity})
	}
	return out
}
