package domain

import "github.com/shopspring/decimal"

// FeeRate é a estimativa fixa de taxas da Amazon sobre o preço de venda.
var FeeRate = decimal.NewFromFloat(0.15)

// EstimateFees calcula taxa e valor líquido a partir do preço, arredondados em 2 casas.
func EstimateFees(price float64) (fee float64, proceeds float64) {
	p := decimal.NewFromFloat(price)
	f := p.Mul(FeeRate).Round(2)

	fee, _ = f.Float64()
	proceeds, _ = p.Sub(f).Round(2).Float64()
	return fee, proceeds
}

// Money converte um valor decimal vindo da API ou de relatório para float com 2 casas.
func Money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
