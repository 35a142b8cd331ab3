// cmd/importer/main.go
package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/VictorRSilva05/proactive-inventory/internal/alert"
	"github.com/VictorRSilva05/proactive-inventory/internal/cache"
	"github.com/VictorRSilva05/proactive-inventory/internal/forecast"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository/postgres"
	"github.com/VictorRSilva05/proactive-inventory/internal/service"
	"github.com/VictorRSilva05/proactive-inventory/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

// deps is everything an importer command needs, built per invocation.
type deps struct {
	db       *postgres.DB
	products repository.ProductRepository
	importer *service.ImportService
	trigger  *service.Trigger
}

func buildDeps(c *cli.Context) (*deps, error) {
	db, err := postgres.NewDBFromURL("pgx", c.String("db-url"))
	if err != nil {
		return nil, err
	}

	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	alertRepo := postgres.NewAlertRepository(db)

	engine := forecast.NewEngine(saleRepo, forecastRepo)
	evaluator := alert.NewEvaluator(productRepo, saleRepo, forecastRepo, alertRepo)
	trigger := service.NewTrigger(engine, evaluator, cache.NewNoopDashboardCache(),
		c.Int("observation-days"), c.Int("horizon-days"))

	archive := storage.NewNoopImportArchive()
	importer := service.NewImportService(productRepo, categoryRepo, saleRepo, archive, trigger)

	return &deps{db: db, products: productRepo, importer: importer, trigger: trigger}, nil
}

func runImport(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: importer import [flags] <file.csv> [more files...]")
	}

	d, err := buildDeps(c)
	if err != nil {
		return err
	}
	defer d.db.Close()

	for _, path := range c.Args().Slice() {
		result, err := d.importer.ImportFile(c.Context, path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Printf("%s: %d rows, %d products\n", path, result.Rows, result.Products)
	}
	return nil
}

// runSweep regenerates every product's forecast and re-evaluates all alert
// conditions, the same pipeline the server runs after data changes.
func runSweep(c *cli.Context) error {
	d, err := buildDeps(c)
	if err != nil {
		return err
	}
	defer d.db.Close()

	products, err := d.products.List(c.Context)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	if err := d.trigger.OnInventoryOrSalesChanged(c.Context, ids...); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	fmt.Printf("sweep completed: %d products\n", len(ids))
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "importer",
		Usage: "Import sales history CSV files and run alert sweeps",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import one or more sales history CSV files",
				ArgsUsage: "<file.csv> [more files...]",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:    "observation-days",
						Usage:   "Sales window used when regenerating forecasts",
						Value:   30,
						EnvVars: []string{"APP_OBSERVATION_DAYS"},
					},
					&cli.IntFlag{
						Name:    "horizon-days",
						Usage:   "Forecast horizon used when regenerating forecasts",
						Value:   30,
						EnvVars: []string{"APP_HORIZON_DAYS"},
					},
				},
				Action: runImport,
			},
			{
				Name:  "sweep",
				Usage: "Regenerate forecasts and re-evaluate alert conditions for every product",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:    "observation-days",
						Usage:   "Sales window used when regenerating forecasts",
						Value:   30,
						EnvVars: []string{"APP_OBSERVATION_DAYS"},
					},
					&cli.IntFlag{
						Name:    "horizon-days",
						Usage:   "Forecast horizon used when regenerating forecasts",
						Value:   30,
						EnvVars: []string{"APP_HORIZON_DAYS"},
					},
				},
				Action: runSweep,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
