package ledger

import (
	"fmt"
	"strings"

	"propintel-backend/internal/audit"
	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/properties/:id/expenses
func CreateExpenseRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := resolveProperty(c)
		if err != nil {
			return err
		}

		var body CreateMoneyRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		date, err := ParseRecordDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		amount, err := ValidateAmount(body.Amount)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec := models.ExpenseRecord{
			PropertyID:    property.ID,
			Amount:        amount,
			Date:          date,
			Details:       strings.TrimSpace(body.Details),
			PaymentMethod: strings.TrimSpace(body.PaymentMethod),
		}

		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save expense record")
		}

		userID, userName := userInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense_record",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Expense added to %s: %s", property.Name, rec.Amount.StringFixed(2)),
			Before:      nil,
			After:       expenseResponse(&rec),
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(expenseResponse(&rec))
	}
}

// GET /api/properties/:id/expenses
func ListExpenseRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := resolveProperty(c)
		if err != nil {
			return err
		}

		var recs []models.ExpenseRecord
		if err := database.DB.Where("property_id = ?", property.ID).
			Order("date desc, id desc").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expense records")
		}

		resp := make([]MoneyRecordResponse, 0, len(recs))
		for i := range recs {
			resp = append(resp, expenseResponse(&recs[i]))
		}
		return c.JSON(resp)
	}
}

func expenseResponse(rec *models.ExpenseRecord) MoneyRecordResponse {
	return MoneyRecordResponse{
		ID:            rec.ID,
		PropertyID:    rec.PropertyID,
		Amount:        rec.Amount,
		Date:          rec.Date.Format("2006-01-02"),
		Details:       rec.Details,
		PaymentMethod: rec.PaymentMethod,
	}
}
