package geo

import (
	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/property-locations
// Serves the marker layer for the map: every visible property that has
// coordinates, as a GeoJSON FeatureCollection.
func PropertyLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var properties []models.Property
		if err := database.DB.
			Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Where("is_hidden = ?", false).
			Order("id asc").
			Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load property locations")
		}

		return c.JSON(BuildFeatureCollection(properties))
	}
}
