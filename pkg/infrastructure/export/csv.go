package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"

	"github.com/skhandal/doi/pkg/application/dto"
)

// WriteCSV writes the final table to a CSV file. An empty table still
// gets its header row.
func WriteCSV(result *dto.Result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	return WriteCSVTo(result, file)
}

// WriteCSVTo streams the final table as CSV, for HTTP downloads.
func WriteCSVTo(result *dto.Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)

	if err := encoder.EncodeHeader(dto.Row{}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range dto.RowsFrom(result.Rows) {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
