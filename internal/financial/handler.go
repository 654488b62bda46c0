package financial

import (
	"errors"

	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FinancialSummaryResponse struct {
	PropertyID uint         `json:"property_id"`
	Totals     Totals       `json:"totals"`
	Trend      []TrendPoint `json:"trend"`
}

// MonthlyIncomeTotals returns "YYYY-MM" income sums for one property,
// oldest month first.
func MonthlyIncomeTotals(propertyID uint) ([]MonthTotal, error) {
	var rows []MonthTotal
	err := database.DB.Model(&models.IncomeRecord{}).
		Select("to_char(date, 'YYYY-MM') AS month, SUM(amount) AS total").
		Where("property_id = ?", propertyID).
		Group("to_char(date, 'YYYY-MM')").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// MonthlyExpenseTotals is the expense counterpart of MonthlyIncomeTotals.
func MonthlyExpenseTotals(propertyID uint) ([]MonthTotal, error) {
	var rows []MonthTotal
	err := database.DB.Model(&models.ExpenseRecord{}).
		Select("to_char(date, 'YYYY-MM') AS month, SUM(amount) AS total").
		Where("property_id = ?", propertyID).
		Group("to_char(date, 'YYYY-MM')").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// GET /api/properties/:id/financial-summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		propertyID, err := c.ParamsInt("id")
		if err != nil || propertyID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Property id is invalid")
		}

		var property models.Property
		if err := database.DB.First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Property not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load property")
		}

		var incomes []models.IncomeRecord
		if err := database.DB.Where("property_id = ?", property.ID).Find(&incomes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load income records")
		}
		var expenses []models.ExpenseRecord
		if err := database.DB.Where("property_id = ?", property.ID).Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expense records")
		}
		var works []models.WorkRecord
		if err := database.DB.Where("property_id = ?", property.ID).Find(&works).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load work records")
		}

		incomeTrend, err := MonthlyIncomeTotals(property.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute income trend")
		}
		expenseTrend, err := MonthlyExpenseTotals(property.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute expense trend")
		}

		return c.JSON(FinancialSummaryResponse{
			PropertyID: property.ID,
			Totals:     ComputeTotals(incomes, expenses, works),
			Trend:      MergeTrends(incomeTrend, expenseTrend),
		})
	}
}
