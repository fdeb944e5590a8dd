package domain

import (
	"encoding/json"
	"fmt"
)

// productWire mirrors Product with pointer fields so absent or null values
// can be told apart from zero values.
type productWire struct {
	UpdatedAt   *string `json:"updated_at"`
	TotalOnHand *int64  `json:"total_on_hand"`
	Master      *struct {
		InStock     *bool  `json:"in_stock"`
		TotalOnHand *int64 `json:"total_on_hand"`
	} `json:"master"`
}

// DecodeProduct decodes body into a Product. Every field is required; unknown
// fields are ignored. All failures wrap ErrSchema.
func DecodeProduct(body []byte) (Product, error) {
	var w productWire
	if err := json.Unmarshal(body, &w); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	switch {
	case w.UpdatedAt == nil:
		return Product{}, missing("updated_at")
	case w.TotalOnHand == nil:
		return Product{}, missing("total_on_hand")
	case w.Master == nil:
		return Product{}, missing("master")
	case w.Master.InStock == nil:
		return Product{}, missing("master.in_stock")
	case w.Master.TotalOnHand == nil:
		return Product{}, missing("master.total_on_hand")
	}

	return Product{
		UpdatedAt:   *w.UpdatedAt,
		TotalOnHand: *w.TotalOnHand,
		Master: Master{
			InStock:     *w.Master.InStock,
			TotalOnHand: *w.Master.TotalOnHand,
		},
	}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing field %q", ErrSchema, field)
}
