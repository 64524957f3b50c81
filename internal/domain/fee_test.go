package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFees(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		wantFee      float64
		wantProceeds float64
	}{
		{name: "preço cheio", price: 100.00, wantFee: 15.00, wantProceeds: 85.00},
		{name: "arredonda a taxa", price: 19.99, wantFee: 3.00, wantProceeds: 16.99},
		{name: "preço zero", price: 0, wantFee: 0, wantProceeds: 0},
		{name: "centavos", price: 12.50, wantFee: 1.88, wantProceeds: 10.62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, proceeds := EstimateFees(tt.price)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantProceeds, proceeds)
		})
	}
}
