package domain

import "encoding/json"

// DefaultBaselineUpdatedAt is the update stamp the product page carried when
// it was last confirmed out of stock.
const DefaultBaselineUpdatedAt = "2021-02-10T02:09:37.000Z"

// Master is the nested stock record of the product payload.
type Master struct {
	InStock     bool  `json:"in_stock"`
	TotalOnHand int64 `json:"total_on_hand"`
}

// Product is the subset of the product API payload that is compared against
// the baseline. It is a plain comparable value: two products are structurally
// equal iff p == q.
type Product struct {
	UpdatedAt   string `json:"updated_at"`
	TotalOnHand int64  `json:"total_on_hand"`
	Master      Master `json:"master"`
}

// Baseline returns the known "not in stock" shape for the given update stamp.
func Baseline(updatedAt string) Product {
	return Product{UpdatedAt: updatedAt}
}

// MayBeInStock reports whether any stock field is positive.
func (p Product) MayBeInStock() bool {
	return p.TotalOnHand > 0 || p.Master.TotalOnHand > 0 || p.Master.InStock
}

func (p Product) String() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "<unprintable product>"
	}
	return string(b)
}
