package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Days       int     // Number of distinct order dates to generate
	Cities     int     // Number of cities to draw from
	Items      int     // Number of distinct items
	RowsPerDay int     // Sales lines per order date
	Unmatched  float64 // Fraction of sales lines with codes missing from inventory
	OutputDir  string  // Output directory for generated files
	Seed       int64   // Random seed for reproducible generation
	Verbose    bool    // Verbose output
}

// GenerateCommand handles scenario generation
type GenerateCommand struct {
	config GenerateConfig
	seed   int64
	rand   *rand.Rand
	cities []string
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		seed:   seed,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// scenarioItem is one generated item with its catalog name
type scenarioItem struct {
	Code        string
	Description string
}

var cityNames = []string{
	"Mumbai",
	"Delhi",
	"Bengaluru",
	"Hyderabad",
	"Chennai",
	"Pune",
	"Kolkata",
	"Ahmedabad",
}

var productNames = []string{
	"Peanut Chikki",
	"Masala Oats",
	"Filter Coffee",
	"Green Tea",
	"Choco Granola",
	"Protein Bar",
	"Trail Mix",
	"Instant Poha",
	"Ragi Cookies",
	"Mango Pickle",
}

var packSizes = []string{"100g", "200g", "250g", "500g", "1kg"}

// Giveaway names land on the exclusion list in the final report.
var giveawayNames = []string{
	"Gift Hamper",
	"Celebration Pack 500g",
	"Product Sample 50g",
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validateInputs(); err != nil {
		return err
	}
	cmd.cities = cityNames[:cmd.config.Cities]

	if cmd.config.Verbose {
		fmt.Printf(
			"🔧 Generating scenario with %d order dates, %d cities, %d items, %d sales lines per day\n",
			cmd.config.Days,
			cmd.config.Cities,
			cmd.config.Items,
			cmd.config.RowsPerDay,
		)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	items := cmd.generateItems()

	if cmd.config.Verbose {
		fmt.Println("📦 Generating inventory.csv...")
	}
	if err := cmd.generateInventory(items); err != nil {
		return fmt.Errorf("failed to generate inventory: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Println("🛒 Generating sales.csv...")
	}
	if err := cmd.generateSales(items); err != nil {
		return fmt.Errorf("failed to generate sales: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

// validateInputs checks the command configuration
func (cmd *GenerateCommand) validateInputs() error {
	if cmd.config.Days < 1 || cmd.config.Items < 1 || cmd.config.RowsPerDay < 1 {
		return fmt.Errorf("--dates, --items and --rows-per-day must all be at least 1")
	}
	if cmd.config.Cities < 1 || cmd.config.Cities > len(cityNames) {
		return fmt.Errorf("--cities must be between 1 and %d", len(cityNames))
	}
	if cmd.config.Unmatched < 0 || cmd.config.Unmatched > 1 {
		return fmt.Errorf("--unmatched must be between 0 and 1")
	}
	return nil
}

// generateItems creates the item catalog
func (cmd *GenerateCommand) generateItems() []scenarioItem {
	items := make([]scenarioItem, 0, cmd.config.Items)
	for i := 0; i < cmd.config.Items; i++ {
		items = append(items, scenarioItem{
			Code:        fmt.Sprintf("SW%05d", i+1),
			Description: cmd.generateDescription(i),
		})
	}
	return items
}

// generateDescription creates a product name; every ninth item draws a
// giveaway name
func (cmd *GenerateCommand) generateDescription(i int) string {
	if i%9 == 8 {
		return giveawayNames[cmd.rand.Intn(len(giveawayNames))]
	}
	name := productNames[cmd.rand.Intn(len(productNames))]
	size := packSizes[cmd.rand.Intn(len(packSizes))]
	return fmt.Sprintf("%s %s", name, size)
}

// generateInventory creates the inventory.csv file. Every item is
// stocked in at least one city.
func (cmd *GenerateCommand) generateInventory(items []scenarioItem) error {
	filePath := filepath.Join(cmd.config.OutputDir, "inventory.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "City,SkuCode,SkuDescription,OpenPoQuantity,WarehouseQtyAvailable")

	for _, item := range items {
		home := cmd.rand.Intn(len(cmd.cities))
		for c, city := range cmd.cities {
			if c != home && cmd.rand.Float64() > 0.6 {
				continue
			}
			fmt.Fprintf(file, "%s,%s,%s,%s,%s\n",
				city, item.Code, item.Description, cmd.generateOpenPo(), cmd.generateWarehouseQty())
		}
	}

	return nil
}

// generateWarehouseQty creates stock levels, some with fractional units
func (cmd *GenerateCommand) generateWarehouseQty() string {
	qty := cmd.rand.Intn(400)
	if cmd.rand.Intn(5) == 0 {
		return fmt.Sprintf("%d.5", qty)
	}
	return strconv.Itoa(qty)
}

// generateOpenPo creates open PO quantities, some left blank
func (cmd *GenerateCommand) generateOpenPo() string {
	if cmd.rand.Intn(6) == 0 {
		return ""
	}
	return strconv.Itoa(cmd.rand.Intn(120))
}

// generateSales creates the sales.csv file
func (cmd *GenerateCommand) generateSales(items []scenarioItem) error {
	filePath := filepath.Join(cmd.config.OutputDir, "sales.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "ORDERED_DATE,CITY,ITEM_CODE,UNITS_SOLD")

	baseDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < cmd.config.Days; d++ {
		orderDate := baseDate.AddDate(0, 0, d).Format("2006-01-02")
		for i := 0; i < cmd.config.RowsPerDay; i++ {
			fmt.Fprintf(file, "%s,%s,%s,%s\n",
				orderDate, cmd.generateSalesCity(), cmd.generateSalesCode(items), cmd.generateUnits())
		}
	}

	return nil
}

// generateSalesCity picks a city, sometimes spelled in upper case the
// way order exports arrive
func (cmd *GenerateCommand) generateSalesCity() string {
	city := cmd.cities[cmd.rand.Intn(len(cmd.cities))]
	if cmd.rand.Float64() < 0.4 {
		return strings.ToUpper(city)
	}
	return city
}

// generateSalesCode picks an item code, with a configured fraction of
// codes that no inventory line carries
func (cmd *GenerateCommand) generateSalesCode(items []scenarioItem) string {
	if cmd.rand.Float64() < cmd.config.Unmatched {
		return fmt.Sprintf("MISSING_%03d", cmd.rand.Intn(20)+1)
	}
	return items[cmd.rand.Intn(len(items))].Code
}

// generateUnits creates unit counts, some spelled as floats
func (cmd *GenerateCommand) generateUnits() string {
	units := 1 + cmd.rand.Intn(20)
	if cmd.rand.Intn(8) == 0 {
		return fmt.Sprintf("%d.0", units)
	}
	return strconv.Itoa(units)
}

var generateConfig GenerateConfig

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic sales and inventory scenario",
	Long: `Generate writes a sales.csv and inventory.csv pair with realistic
texture: mixed-case city spellings, fractional quantities, blank open
PO cells, giveaway products and sales lines whose item codes never
appear in inventory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return NewGenerateCommand(generateConfig).Execute(cmd.Context())
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateConfig.Days, "dates", 10, "number of distinct order dates")
	generateCmd.Flags().IntVar(&generateConfig.Cities, "cities", 4, "number of cities")
	generateCmd.Flags().IntVar(&generateConfig.Items, "items", 25, "number of distinct items")
	generateCmd.Flags().IntVar(&generateConfig.RowsPerDay, "rows-per-day", 40, "sales lines per order date")
	generateCmd.Flags().Float64Var(&generateConfig.Unmatched, "unmatched", 0.05, "fraction of sales lines with unknown item codes")
	generateCmd.Flags().StringVar(&generateConfig.OutputDir, "output", "scenario", "output directory for generated files")
	generateCmd.Flags().Int64Var(&generateConfig.Seed, "seed", 0, "random seed for reproducible generation")
	generateCmd.Flags().BoolVarP(&generateConfig.Verbose, "verbose", "v", false, "enable verbose output")
}
