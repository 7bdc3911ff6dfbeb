package cart

import "time"

// Line is one product entry in a cart. Name, price, and image are captured
// when the product is added; later catalog edits never touch them.
type Line struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is a read model. Totals are derived from the lines on every build,
// never stored.
type Cart struct {
	Items         []Line  `json:"items"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Build derives a Cart from raw lines.
func Build(lines []Line) Cart {
	c := Cart{Items: lines}
	if c.Items == nil {
		c.Items = []Line{}
	}
	for _, l := range c.Items {
		c.TotalQuantity += l.Quantity
		c.TotalPrice += l.Subtotal()
	}
	return c
}

// MergeLines folds an anonymous cart into an account cart: quantities are
// summed for lines sharing a product, other anonymous lines are appended
// with their captured price and name carried over unchanged. Account line
// order is preserved, then anonymous-only lines in their own order.
func MergeLines(anonymous, account []Line) []Line {
	merged := make([]Line, len(account))
	copy(merged, account)

	index := make(map[string]int, len(merged))
	for i, l := range merged {
		index[l.ProductID] = i
	}

	for _, l := range anonymous {
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}

	return merged
}
