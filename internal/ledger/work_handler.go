package ledger

import (
	"errors"
	"fmt"
	"strings"

	"propintel-backend/internal/audit"
	"propintel-backend/internal/auth"
	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateWorkRecordRequest struct {
	Description   string           `json:"description"`
	Date          string           `json:"date"` // "YYYY-MM-DD"
	Cost          *decimal.Decimal `json:"cost"`
	PaymentMethod string           `json:"payment_method"`
}

type WorkRecordResponse struct {
	ID            uint            `json:"id"`
	PropertyID    uint            `json:"property_id"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Cost          decimal.Decimal `json:"cost"`
	PaymentMethod string          `json:"payment_method"`
}

func userInfo(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

// resolveProperty loads the parent property or returns a 404 error. Records
// never attach to a missing property, the foreign key is the backstop.
func resolveProperty(c *fiber.Ctx) (*models.Property, error) {
	propertyID, err := c.ParamsInt("id")
	if err != nil || propertyID <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Property id is invalid")
	}

	var property models.Property
	if err := database.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load property")
	}
	return &property, nil
}

// POST /api/properties/:id/work
func CreateWorkRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := resolveProperty(c)
		if err != nil {
			return err
		}

		var body CreateWorkRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Description) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Work description is required")
		}
		date, err := ParseRecordDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		cost, err := ValidateCost(body.Cost)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec := models.WorkRecord{
			PropertyID:    property.ID,
			Description:   strings.TrimSpace(body.Description),
			Date:          date,
			Cost:          cost,
			PaymentMethod: strings.TrimSpace(body.PaymentMethod),
		}

		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save work record")
		}

		userID, userName := userInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "work_record",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Work record added to %s: %s", property.Name, rec.Cost.StringFixed(2)),
			Before:      nil,
			After:       workResponse(&rec),
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(workResponse(&rec))
	}
}

// GET /api/properties/:id/work
func ListWorkRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := resolveProperty(c)
		if err != nil {
			return err
		}

		var recs []models.WorkRecord
		if err := database.DB.Where("property_id = ?", property.ID).
			Order("date desc, id desc").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list work records")
		}

		resp := make([]WorkRecordResponse, 0, len(recs))
		for i := range recs {
			resp = append(resp, workResponse(&recs[i]))
		}
		return c.JSON(resp)
	}
}

func workResponse(rec *models.WorkRecord) WorkRecordResponse {
	return WorkRecordResponse{
		ID:            rec.ID,
		PropertyID:    rec.PropertyID,
		Description:   rec.Description,
		Date:          rec.Date.Format("2006-01-02"),
		Cost:          rec.Cost,
		PaymentMethod: rec.PaymentMethod,
	}
}
