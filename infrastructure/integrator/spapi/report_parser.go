package spapi

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/seller-sync/internal/domain"
)

// Colunas do GET_FLAT_FILE_ALL_ORDERS_DATA_BY_ORDER_DATE_GENERAL
const (
	colOrderID            = "amazon-order-id"
	colPurchaseDate       = "purchase-date"
	colOrderStatus        = "order-status"
	colFulfillmentChannel = "fulfillment-channel"
	colProductName        = "product-name"
	colSKU                = "sku"
	colQuantity           = "quantity"
	colCurrency           = "currency"
	colItemPrice          = "item-price"
)

// Colunas do GET_MERCHANT_LISTINGS_ALL_DATA
const (
	colListingSKU   = "seller-sku"
	colListingPrice = "price"
)

type tsvTable struct {
	columns map[string]int
	reader  *csv.Reader
	line    int
}

func newTSVTable(content string) (*tsvTable, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &ParseError{Line: 1, Reason: "cabeçalho ilegível: " + err.Error()}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	return &tsvTable{columns: columns, reader: reader, line: 1}, nil
}

// next devolve a próxima linha; io.EOF encerra a leitura.
func (t *tsvTable) next() ([]string, error) {
	for {
		record, err := t.reader.Read()
		t.line++
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, &ParseError{Line: t.line, Reason: err.Error()}
		}

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		return record, nil
	}
}

// get procura a coluna pelo nome do cabeçalho; coluna ausente devolve vazio.
func (t *tsvTable) get(record []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (t *tsvTable) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// ParseOrderReport agrupa as linhas por amazon-order-id: a primeira ocorrência cria o pedido
// e as seguintes acrescentam itens e somam o total. Linhas inválidas são puladas e devolvidas como ParseError.
func ParseOrderReport(content, accountID string, mp domain.Marketplace) ([]domain.OrderRecord, []error) {
	table, err := newTSVTable(content)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{err}
	}
	if !table.has(colOrderID) {
		return nil, []error{&ParseError{Line: 1, Column: colOrderID, Reason: "coluna obrigatória ausente"}}
	}

	var (
		parseErrs []error
		order     []string
		byID      = make(map[string]*domain.OrderRecord)
	)

	for {
		record, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}

		orderID := table.get(record, colOrderID)
		if orderID == "" {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colOrderID, Reason: "vazio"})
			continue
		}

		sku := table.get(record, colSKU)
		if sku == "" {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colSKU, Reason: "vazio"})
			continue
		}

		quantity, err := parseQuantity(table.get(record, colQuantity))
		if err != nil {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colQuantity, Reason: err.Error()})
			continue
		}

		amount, err := parseAmount(table.get(record, colItemPrice))
		if err != nil {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colItemPrice, Reason: err.Error()})
			continue
		}

		existing, ok := byID[orderID]
		if !ok {
			purchased, err := parseTimestamp(table.get(record, colPurchaseDate))
			if err != nil {
				parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colPurchaseDate, Reason: err.Error()})
				continue
			}

			currency := table.get(record, colCurrency)
			if currency == "" {
				currency = mp.Currency
			}

			existing = &domain.OrderRecord{
				AmazonOrderID:      orderID,
				AccountID:          accountID,
				Marketplace:        mp.Code,
				PurchaseDate:       purchased,
				OrderStatus:        table.get(record, colOrderStatus),
				Currency:           currency,
				FulfillmentChannel: table.get(record, colFulfillmentChannel),
			}
			byID[orderID] = existing
			order = append(order, orderID)
		}

		existing.AddItem(domain.OrderItem{
			SKU:       sku,
			Title:     table.get(record, colProductName),
			Quantity:  quantity,
			UnitPrice: domain.UnitPriceFromLine(amount, quantity),
		}, amount)
	}

	orders := make([]domain.OrderRecord, 0, len(order))
	for _, id := range order {
		orders = append(orders, *byID[id])
	}

	return orders, parseErrs
}

// ParseListingPrices devolve o preço anunciado por seller-sku, ignorando preços zerados.
func ParseListingPrices(content string) (map[string]float64, []error) {
	prices := make(map[string]float64)

	table, err := newTSVTable(content)
	if errors.Is(err, io.EOF) {
		return prices, nil
	}
	if err != nil {
		return prices, []error{err}
	}

	var parseErrs []error
	for {
		record, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}

		sku := table.get(record, colListingSKU)
		if sku == "" {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colListingSKU, Reason: "vazio"})
			continue
		}

		price, err := parseAmount(table.get(record, colListingPrice))
		if err != nil {
			parseErrs = append(parseErrs, &ParseError{Line: table.line, Column: colListingPrice, Reason: err.Error()})
			continue
		}

		if price.IsPositive() {
			prices[sku] = domain.Money(price)
		}
	}

	return prices, parseErrs
}

func parseQuantity(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// parseAmount aceita vazio como zero e vírgula como separador decimal.
func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(value, ",") && !strings.Contains(value, ".") {
		value = strings.ReplaceAll(value, ",", ".")
	}
	return decimal.NewFromString(value)
}
