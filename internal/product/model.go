package product

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateParams struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

type UpdateParams struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Image == nil
}
