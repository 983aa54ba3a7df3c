package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skhandal/doi/pkg/application/dto"
)

// Format identifies an export artifact type
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// WorkbookName is the spreadsheet artifact's fixed file name
const WorkbookName = "SWIGGY_DOI.xlsx"

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatJSON, FormatXLSX, FormatSQLite:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// ArtifactPath returns where Write places the artifact for a format.
func ArtifactPath(format Format, outputDir string) string {
	switch format {
	case FormatCSV:
		return filepath.Join(outputDir, "doi_report.csv")
	case FormatJSON:
		return filepath.Join(outputDir, "doi_report.json")
	case FormatXLSX:
		return filepath.Join(outputDir, WorkbookName)
	case FormatSQLite:
		return filepath.Join(outputDir, "doi_report.db")
	default:
		return ""
	}
}

// Write generates the artifact for one format under outputDir and
// returns the artifact path.
func Write(result *dto.Result, format Format, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := ArtifactPath(format, outputDir)
	switch format {
	case FormatCSV:
		return path, WriteCSV(result, path)
	case FormatJSON:
		return path, WriteJSON(result, path)
	case FormatXLSX:
		return path, WriteXLSX(result, path)
	case FormatSQLite:
		return path, WriteSQLite(result, path)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
