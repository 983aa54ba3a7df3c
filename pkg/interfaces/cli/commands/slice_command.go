package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/pipeline"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/csv"
	"github.com/skhandal/doi/pkg/interfaces/cli/output"
	"github.com/skhandal/doi/pkg/interfaces/tui"
)

// SliceConfig holds configuration for the slice command
type SliceConfig struct {
	SalesFile     string
	InventoryFile string
	WindowDays    int
	OutputDir     string
	Cities        []string
	Products      []string
	Interactive   bool
	Verbose       bool
}

// SliceCommand filters and regroups the DOI table by city and product
type SliceCommand struct {
	config SliceConfig
}

// NewSliceCommand creates a new slice command
func NewSliceCommand(config SliceConfig) *SliceCommand {
	return &SliceCommand{config: config}
}

// Execute computes the DOI table and renders the selected view
func (c *SliceCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return err
	}

	if c.config.Interactive {
		return tui.Run(tui.Config{
			SalesPath:     c.config.SalesFile,
			InventoryPath: c.config.InventoryFile,
			WindowDays:    c.config.WindowDays,
			OutputDir:     c.config.OutputDir,
		})
	}

	sales := csv.NewSalesFile(c.config.SalesFile)
	inventory := csv.NewInventoryFile(c.config.InventoryFile)

	service := pipeline.New(pipeline.Config{WindowDays: c.config.WindowDays})
	result, err := service.Run(ctx, sales, inventory)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	engine := slicer.New(result.Rows, result.WindowDays)
	view := engine.Slice(entities.Selection{
		Cities:   c.config.Cities,
		Products: c.config.Products,
	})

	if c.config.Verbose {
		fmt.Printf("🔎 View: %s (%d rows in the full table)\n\n", view.Shape, len(result.Rows))
	}

	switch view.Shape {
	case slicer.ShapePrompt:
		fmt.Println(view.Prompt)
	case slicer.ShapeByCity, slicer.ShapeByProduct:
		output.PrintGroupedTable(view.Shape.GroupKeyColumn(), dto.GroupRowsFrom(view.Groups))
	case slicer.ShapeDetail:
		output.PrintFinalTable(dto.RowsFrom(view.Rows))
	}

	return nil
}

// validateInputs checks the command configuration
func (c *SliceCommand) validateInputs() error {
	if c.config.SalesFile == "" || c.config.InventoryFile == "" {
		return fmt.Errorf("both --sales and --inventory files are required")
	}

	if c.config.WindowDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.config.WindowDays)
	}

	for _, name := range []string{c.config.SalesFile, c.config.InventoryFile} {
		if _, err := os.Stat(name); err != nil {
			return fmt.Errorf("input file not found: %s", name)
		}
	}

	return nil
}

var sliceConfig SliceConfig

var sliceCmd = &cobra.Command{
	Use:   "slice",
	Short: "Filter and regroup the DOI table by city and product",
	Long: `Slice computes the DOI table and renders a custom view of it. Selecting
only cities groups by city, selecting only products groups by product,
and selecting both shows the matching detail rows. "All" selects every
value of a dimension. Without any selection, slice prints a prompt;
use --interactive to pick cities and products in a terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applySliceDefaults()
		return NewSliceCommand(sliceConfig).Execute(cmd.Context())
	},
}

func init() {
	sliceCmd.Flags().StringVar(&sliceConfig.SalesFile, "sales", "", "path to the sales CSV export")
	sliceCmd.Flags().StringVar(&sliceConfig.InventoryFile, "inventory", "", "path to the inventory CSV export")
	sliceCmd.Flags().IntVar(&sliceConfig.WindowDays, "days", 0, "number of trailing order dates in the sales window")
	sliceCmd.Flags().StringVar(&sliceConfig.OutputDir, "output", "", "output directory for exports from the terminal UI")
	sliceCmd.Flags().StringSliceVar(&sliceConfig.Cities, "cities", nil, "cities to include (repeatable, \"All\" for every city)")
	sliceCmd.Flags().StringSliceVar(&sliceConfig.Products, "products", nil, "products to include (repeatable, \"All\" for every product)")
	sliceCmd.Flags().BoolVarP(&sliceConfig.Interactive, "interactive", "i", false, "pick cities and products in a terminal UI")
	sliceCmd.Flags().BoolVarP(&sliceConfig.Verbose, "verbose", "v", false, "enable verbose output")
}

// applySliceDefaults fills unset flags from the environment configuration
func applySliceDefaults() {
	if sliceConfig.SalesFile == "" {
		sliceConfig.SalesFile = cfg.SalesFile
	}
	if sliceConfig.InventoryFile == "" {
		sliceConfig.InventoryFile = cfg.InventoryFile
	}
	if sliceConfig.WindowDays <= 0 {
		sliceConfig.WindowDays = cfg.WindowDays
	}
	if sliceConfig.OutputDir == "" {
		sliceConfig.OutputDir = cfg.OutputDir
	}
}
