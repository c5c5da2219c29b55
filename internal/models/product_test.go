package models

import "testing"

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		stock int
		want  bool
	}{
		{-1, true},
		{0, true},
		{9, true},
		{10, false},
		{11, false},
	}
	for _, tt := range tests {
		p := Product{StockLevel: tt.stock}
		if got := p.IsLowStock(); got != tt.want {
			t.Errorf("IsLowStock() with stock %d = %v, want %v", tt.stock, got, tt.want)
		}
	}
}

func TestValue(t *testing.T) {
	price := 2.5
	if v := (Product{StockLevel: 4, Price: &price}).Value(); v != 10 {
		t.Errorf("expected value 10, got %v", v)
	}
	if v := (Product{StockLevel: 4}).Value(); v != 0 {
		t.Errorf("expected value 0 without a price, got %v", v)
	}
}
