package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/services"
)

// Loader handles loading DOI input data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// salesRow mirrors one line of the sales export. Values stay strings
// so null coercion and format checks happen per row with row numbers.
type salesRow struct {
	OrderedDate string `csv:"ORDERED_DATE"`
	City        string `csv:"CITY"`
	ItemCode    string `csv:"ITEM_CODE"`
	UnitsSold   string `csv:"UNITS_SOLD"`
}

// inventoryRow mirrors one line of the warehouse export with its
// source column names.
type inventoryRow struct {
	City           string `csv:"City"`
	SkuCode        string `csv:"SkuCode"`
	SkuDescription string `csv:"SkuDescription"`
	OpenPoQuantity string `csv:"OpenPoQuantity"`
	WarehouseQty   string `csv:"WarehouseQtyAvailable"`
}

var salesDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-Jan-2006",
}

// LoadSales loads sales records from a CSV file
func (l *Loader) LoadSales(filename string) ([]entities.SalesRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file %s: %w", filename, err)
	}
	defer file.Close()

	decoder, err := newDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV: %w", err)
	}
	if err := services.ValidateColumns("sales", decoder.Header(), services.RequiredSalesColumns()); err != nil {
		return nil, err
	}

	var records []entities.SalesRecord
	for i := 0; ; i++ {
		var row salesRow
		if err := decoder.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}

		record, err := parseSalesRow(row)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// LoadInventory loads inventory records from a CSV file
func (l *Loader) LoadInventory(filename string) ([]entities.InventoryRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file %s: %w", filename, err)
	}
	defer file.Close()

	decoder, err := newDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory CSV: %w", err)
	}
	if err := services.ValidateColumns("inventory", decoder.Header(), services.RequiredInventoryColumns()); err != nil {
		return nil, err
	}

	var records []entities.InventoryRecord
	for i := 0; ; i++ {
		var row inventoryRow
		if err := decoder.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}

		record, err := parseInventoryRow(row)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// newDecoder wraps a file in a CSV decoder, skipping a UTF-8 byte
// order mark when the export carries one.
func newDecoder(file *os.File) (*csvutil.Decoder, error) {
	buffered := bufio.NewReader(file)
	if lead, err := buffered.Peek(3); err == nil && bytes.Equal(lead, []byte{0xEF, 0xBB, 0xBF}) {
		if _, err := buffered.Discard(3); err != nil {
			return nil, err
		}
	}
	return csvutil.NewDecoder(csv.NewReader(buffered))
}

func parseSalesRow(row salesRow) (entities.SalesRecord, error) {
	date, err := parseOrderDate(row.OrderedDate)
	if err != nil {
		return entities.SalesRecord{}, err
	}

	units, err := parseUnits(row.UnitsSold)
	if err != nil {
		return entities.SalesRecord{}, err
	}

	return entities.SalesRecord{
		OrderedDate: date,
		City:        entities.City(row.City),
		ItemCode:    entities.ItemCode(row.ItemCode),
		UnitsSold:   units,
	}, nil
}

func parseInventoryRow(row inventoryRow) (entities.InventoryRecord, error) {
	openPo, err := parseQuantity(row.OpenPoQuantity)
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid OpenPoQuantity: %w", err)
	}

	warehouse, err := parseQuantity(row.WarehouseQty)
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid WarehouseQtyAvailable: %w", err)
	}

	return entities.InventoryRecord{
		City:           entities.City(row.City),
		ItemCode:       entities.ItemCode(row.SkuCode),
		ProductName:    entities.ProductName(row.SkuDescription),
		OpenPoQuantity: openPo,
		WarehouseQty:   warehouse,
	}, nil
}

func parseOrderDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range salesDateLayouts {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ORDERED_DATE %q (expected YYYY-MM-DD)", value)
}

// parseUnits reads a unit count, accepting the "10.0" spelling numeric
// exports produce. An empty cell coerces to zero.
func parseUnits(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	quantity, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid UNITS_SOLD %q", value)
	}
	return quantity.IntPart(), nil
}

// parseQuantity reads a decimal measure. An empty cell coerces to zero.
func parseQuantity(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	quantity, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number", value)
	}
	return quantity, nil
}
