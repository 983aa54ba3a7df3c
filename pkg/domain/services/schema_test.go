package services

import (
	"errors"
	"testing"
)

func TestValidateColumns(t *testing.T) {
	testCases := []struct {
		name          string
		header        []string
		required      []string
		expectMissing string
	}{
		{
			"all present",
			[]string{"City", "SkuCode", "SkuDescription", "OpenPoQuantity", "WarehouseQtyAvailable"},
			RequiredInventoryColumns(),
			"",
		},
		{
			"extra columns ignored",
			[]string{"ORDERED_DATE", "CITY", "ITEM_CODE", "UNITS_SOLD", "CHANNEL"},
			RequiredSalesColumns(),
			"",
		},
		{
			"missing column reported",
			[]string{"City", "SkuCode", "SkuDescription", "OpenPoQuantity"},
			RequiredInventoryColumns(),
			"WarehouseQtyAvailable",
		},
		{
			"match is case sensitive",
			[]string{"city", "SkuCode", "SkuDescription", "OpenPoQuantity", "WarehouseQtyAvailable"},
			RequiredInventoryColumns(),
			"City",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateColumns("inventory", tc.header, tc.required)
			if tc.expectMissing == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected missing column error, got none")
			}
			var missing *MissingColumnError
			if !errors.As(err, &missing) {
				t.Fatalf("Expected MissingColumnError, got %T", err)
			}
			if missing.Column != tc.expectMissing {
				t.Errorf("Expected missing column %q, got %q", tc.expectMissing, missing.Column)
			}
			if missing.Source != "inventory" {
				t.Errorf("Expected source inventory, got %q", missing.Source)
			}
		})
	}
}

func TestMissingColumnError_Message(t *testing.T) {
	err := &MissingColumnError{Source: "sales", Column: "UNITS_SOLD"}
	expected := `sales input is missing required column "UNITS_SOLD"`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}
