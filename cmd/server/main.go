package main

import (
	"os"
	"strings"

	"propintel-backend/internal/audit"
	"propintel-backend/internal/auth"
	"propintel-backend/internal/config"
	"propintel-backend/internal/dashboard"
	"propintel-backend/internal/database"
	"propintel-backend/internal/financial"
	"propintel-backend/internal/geo"
	"propintel-backend/internal/geocode"
	"propintel-backend/internal/importer"
	"propintel-backend/internal/ledger"
	"propintel-backend/internal/models"
	"propintel-backend/internal/property"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	// Monetary fields render as JSON numbers, like the NUMERIC columns the
	// old app passed straight through.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	database.Init(cfg)

	geocoder := geocode.New(cfg.GeocoderBaseURL)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.UploadLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/guest-login", auth.GuestLoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Property directory
	protected.Get("/properties", property.ListPropertiesHandler())
	protected.Get("/properties/:id", property.GetPropertyHandler())
	protected.Post("/properties", auth.RequireWriter(), property.CreatePropertyHandler(geocoder))
	protected.Put("/properties/:id", auth.RequireWriter(), property.UpdatePropertyHandler())
	protected.Post("/properties/:id/visibility", auth.RequireRole(models.RoleAdmin), property.ToggleVisibilityHandler())

	// Records
	protected.Get("/properties/:id/work", ledger.ListWorkRecordsHandler())
	protected.Post("/properties/:id/work", auth.RequireWriter(), ledger.CreateWorkRecordHandler())
	protected.Get("/properties/:id/income", ledger.ListIncomeRecordsHandler())
	protected.Post("/properties/:id/income", auth.RequireWriter(), ledger.CreateIncomeRecordHandler())
	protected.Get("/properties/:id/expenses", ledger.ListExpenseRecordsHandler())
	protected.Post("/properties/:id/expenses", auth.RequireWriter(), ledger.CreateExpenseRecordHandler())

	// Financial summary & dashboard
	protected.Get("/properties/:id/financial-summary", financial.SummaryHandler())
	protected.Get("/dashboard/finance-chart", dashboard.FinanceChartHandler())

	// Map
	protected.Get("/property-locations", geo.PropertyLocationsHandler())

	// Excel import
	protected.Post("/import/excel", auth.RequireRole(models.RoleAdmin), importer.ImportExcelHandler())

	// Audit logs
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
