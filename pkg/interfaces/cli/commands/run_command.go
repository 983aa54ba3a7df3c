package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/pipeline"
	"github.com/skhandal/doi/pkg/infrastructure/export"
	"github.com/skhandal/doi/pkg/infrastructure/publish"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/csv"
	"github.com/skhandal/doi/pkg/interfaces/cli/output"
)

// RunConfig holds configuration for the run command
type RunConfig struct {
	SalesFile     string
	InventoryFile string
	WindowDays    int
	Format        string
	OutputDir     string
	Publish       bool
	Verbose       bool

	S3Bucket     string
	S3Prefix     string
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
}

// RunCommand executes the DOI pipeline end to end
type RunCommand struct {
	config RunConfig
}

// NewRunCommand creates a new run command
func NewRunCommand(config RunConfig) *RunCommand {
	return &RunCommand{config: config}
}

// Execute runs the DOI pipeline and generates output
func (c *RunCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return err
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	sales := csv.NewSalesFile(files["sales"])
	inventory := csv.NewInventoryFile(files["inventory"])

	service := pipeline.New(pipeline.Config{
		WindowDays: c.config.WindowDays,
		StageHook:  c.stageHook(),
	})

	if c.config.Verbose {
		fmt.Println("🔄 Running DOI pipeline...")
	}

	startTime := time.Now()
	result, err := service.Run(ctx, sales, inventory)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	elapsed := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("✅ Pipeline completed in %v\n", elapsed)
		fmt.Printf("  %d sales lines (%d unmatched)\n", result.SalesRecords, result.UnmatchedItems)
		fmt.Printf("  %d inventory lines\n", result.InventoryLines)
		fmt.Printf("  %d final rows (%d excluded)\n\n", len(result.Rows), result.ExcludedRows)
	}

	outputConfig := output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Verbose:    c.config.Verbose,
		Elapsed:    elapsed,
		InputFiles: files,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	if c.config.Publish {
		if err := c.publishArtifact(ctx, result); err != nil {
			return fmt.Errorf("failed to publish artifact: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Println("\n🏁 DOI run complete!")
	}

	return nil
}

// validateInputs checks the command configuration
func (c *RunCommand) validateInputs() error {
	if c.config.SalesFile == "" || c.config.InventoryFile == "" {
		return fmt.Errorf("both --sales and --inventory files are required")
	}

	if c.config.WindowDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.config.WindowDays)
	}

	switch c.config.Format {
	case "text", "html", "csv", "json", "xlsx", "sqlite":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}

	if c.config.Publish {
		if _, err := export.ParseFormat(c.config.Format); err != nil {
			return fmt.Errorf("--publish requires a file output format (csv, json, xlsx, sqlite)")
		}
		if c.config.S3Bucket == "" {
			return fmt.Errorf("--publish requires DOI_S3_BUCKET to be set")
		}
	}

	return nil
}

// resolveInputFiles checks that the input files exist
func (c *RunCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"sales":     c.config.SalesFile,
		"inventory": c.config.InventoryFile,
	}

	for name, path := range files {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

func (c *RunCommand) printHeader(files map[string]string) {
	fmt.Println("🚀 DOI Report CLI")
	fmt.Println("=================")
	fmt.Println("📊 Input files:")
	for name, path := range files {
		fmt.Printf("  %s: %s\n", name, path)
	}
	fmt.Printf("📁 Output format: %s\n", c.config.Format)
	fmt.Printf("📅 Sales window: last %d order dates\n", c.config.WindowDays)
	fmt.Println()
}

// stageHook reports pipeline stages in verbose mode
func (c *RunCommand) stageHook() func(stage string) {
	if !c.config.Verbose {
		return nil
	}
	return func(stage string) {
		fmt.Printf("  %s\n", stage)
	}
}

// publishArtifact uploads the generated artifact to S3
func (c *RunCommand) publishArtifact(ctx context.Context, result *dto.Result) error {
	format, err := export.ParseFormat(c.config.Format)
	if err != nil {
		return err
	}

	publisher, err := publish.New(ctx, publish.Config{
		Bucket:    c.config.S3Bucket,
		Prefix:    c.config.S3Prefix,
		Region:    c.config.AWSRegion,
		AccessKey: c.config.AWSAccessKey,
		SecretKey: c.config.AWSSecretKey,
	})
	if err != nil {
		return err
	}

	key, err := publisher.UploadFile(ctx, result.RunID.String(), export.ArtifactPath(format, c.config.OutputDir))
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("☁️ Uploaded to s3://%s/%s\n", c.config.S3Bucket, key)
	}

	return nil
}

var runConfig RunConfig

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the DOI table from sales and inventory CSV files",
	Long: `Run loads the sales and inventory CSV exports, reconciles them over the
last n distinct order dates and writes the final DOI table in the
requested format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunDefaults()
		return NewRunCommand(runConfig).Execute(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfig.SalesFile, "sales", "", "path to the sales CSV export")
	runCmd.Flags().StringVar(&runConfig.InventoryFile, "inventory", "", "path to the inventory CSV export")
	runCmd.Flags().IntVar(&runConfig.WindowDays, "days", 0, "number of trailing order dates in the sales window")
	runCmd.Flags().StringVar(&runConfig.Format, "format", "text", "output format: text, html, csv, json, xlsx, sqlite")
	runCmd.Flags().StringVar(&runConfig.OutputDir, "output", "", "output directory for generated artifacts")
	runCmd.Flags().BoolVar(&runConfig.Publish, "publish", false, "upload the artifact to the configured S3 bucket")
	runCmd.Flags().BoolVarP(&runConfig.Verbose, "verbose", "v", false, "enable verbose output")
}

// applyRunDefaults fills unset flags from the environment configuration
func applyRunDefaults() {
	if runConfig.SalesFile == "" {
		runConfig.SalesFile = cfg.SalesFile
	}
	if runConfig.InventoryFile == "" {
		runConfig.InventoryFile = cfg.InventoryFile
	}
	if runConfig.WindowDays <= 0 {
		runConfig.WindowDays = cfg.WindowDays
	}
	if runConfig.OutputDir == "" {
		runConfig.OutputDir = cfg.OutputDir
	}

	runConfig.S3Bucket = cfg.S3Bucket
	runConfig.S3Prefix = cfg.S3Prefix
	runConfig.AWSRegion = cfg.AWSRegion
	runConfig.AWSAccessKey = cfg.AWSAccessKey
	runConfig.AWSSecretKey = cfg.AWSSecretKey
}
