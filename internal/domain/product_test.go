package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
)

const baselineJSON = `{"updated_at":"2021-02-10T02:09:37.000Z","total_on_hand":0,"master":{"in_stock":false,"total_on_hand":0}}`

func TestBaselineRoundTrip(t *testing.T) {
	base := domain.Baseline(domain.DefaultBaselineUpdatedAt)

	b, err := json.Marshal(base)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != baselineJSON {
		t.Fatalf("unexpected encoding: %s", b)
	}

	got, err := domain.DecodeProduct(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != base {
		t.Fatalf("expected %v, got %v", base, got)
	}
}

func TestDecodeProduct(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"baseline", baselineJSON, false},
		{"extra fields ignored", `{"id":7,"updated_at":"x","total_on_hand":0,"master":{"in_stock":false,"total_on_hand":0,"sku":"a"}}`, false},
		{"missing updated_at", `{"total_on_hand":0,"master":{"in_stock":false,"total_on_hand":0}}`, true},
		{"missing master", `{"updated_at":"x","total_on_hand":0}`, true},
		{"missing nested count", `{"updated_at":"x","total_on_hand":0,"master":{"in_stock":false}}`, true},
		{"null in_stock", `{"updated_at":"x","total_on_hand":0,"master":{"in_stock":null,"total_on_hand":0}}`, true},
		{"type mismatch", `{"updated_at":"x","total_on_hand":"zero","master":{"in_stock":false,"total_on_hand":0}}`, true},
		{"not json", `<html>blocked</html>`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.DecodeProduct([]byte(tc.body))
			if tc.wantErr {
				if !errors.Is(err, domain.ErrSchema) {
					t.Fatalf("expected ErrSchema, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestProduct_MayBeInStock(t *testing.T) {
	base := domain.Baseline(domain.DefaultBaselineUpdatedAt)
	if base.MayBeInStock() {
		t.Fatal("baseline must not signal stock")
	}

	p := base
	p.TotalOnHand = 1
	if !p.MayBeInStock() {
		t.Fatal("expected top-level count to signal stock")
	}

	p = base
	p.Master.TotalOnHand = 3
	if !p.MayBeInStock() {
		t.Fatal("expected nested count to signal stock")
	}

	p = base
	p.Master.InStock = true
	if !p.MayBeInStock() {
		t.Fatal("expected in_stock flag to signal stock")
	}
}
