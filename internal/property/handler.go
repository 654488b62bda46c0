package property

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"propintel-backend/internal/audit"
	"propintel-backend/internal/auth"
	"propintel-backend/internal/database"
	"propintel-backend/internal/financial"
	"propintel-backend/internal/geocode"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePropertyRequest struct {
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	Latitude      *float64         `json:"latitude"`
	Longitude     *float64         `json:"longitude"`
	PurchaseDate  *string          `json:"purchase_date"` // "YYYY-MM-DD"
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Notes         string           `json:"notes"`
}

type UpdatePropertyRequest struct {
	Name          *string          `json:"name"`
	Address       *string          `json:"address"`
	Latitude      *float64         `json:"latitude"`
	Longitude     *float64         `json:"longitude"`
	PurchaseDate  *string          `json:"purchase_date"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Notes         *string          `json:"notes"`
}

type PropertyResponse struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	Latitude      *float64         `json:"latitude"`
	Longitude     *float64         `json:"longitude"`
	PurchaseDate  *string          `json:"purchase_date"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Notes         string           `json:"notes"`
	IsHidden      bool             `json:"is_hidden"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type PropertyListItem struct {
	PropertyResponse
	WorkCount    int64 `json:"work_count"`
	IncomeCount  int64 `json:"income_count"`
	ExpenseCount int64 `json:"expense_count"`
}

type WorkRecordResponse struct {
	ID            uint            `json:"id"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Cost          decimal.Decimal `json:"cost"`
	PaymentMethod string          `json:"payment_method"`
}

type MoneyRecordResponse struct {
	ID            uint            `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Details       string          `json:"details"`
	PaymentMethod string          `json:"payment_method"`
}

type PropertyDetailResponse struct {
	Property       PropertyResponse       `json:"property"`
	WorkRecords    []WorkRecordResponse   `json:"work_records"`
	IncomeRecords  []MoneyRecordResponse  `json:"income_records"`
	ExpenseRecords []MoneyRecordResponse  `json:"expense_records"`
	Totals         financial.Totals       `json:"totals"`
	Trend          []financial.TrendPoint `json:"trend"`
}

func toResponse(p *models.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		PurchasePrice: p.PurchasePrice,
		CurrentValue:  p.CurrentValue,
		Notes:         p.Notes,
		IsHidden:      p.IsHidden,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.PurchaseDate != nil {
		d := p.PurchaseDate.Format("2006-01-02")
		resp.PurchaseDate = &d
	}
	return resp
}

func userInfo(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

func isAdmin(c *fiber.Ctx) bool {
	role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	return ok && role == models.RoleAdmin
}

// searchPattern turns a search term into the ILIKE pattern matched against
// both name and address, so "melb" finds "123 Test Street, Melbourne".
func searchPattern(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}

type recordCounts struct {
	PropertyID   uint
	WorkCount    int64
	IncomeCount  int64
	ExpenseCount int64
}

func countsByProperty(rows []recordCounts) map[uint]recordCounts {
	counts := make(map[uint]recordCounts, len(rows))
	for _, r := range rows {
		counts[r.PropertyID] = r
	}
	return counts
}

// countRecords fetches per-property record counts in one grouped query
// instead of three queries per property.
func countRecords(ids []uint) (map[uint]recordCounts, error) {
	if len(ids) == 0 {
		return map[uint]recordCounts{}, nil
	}
	var rows []recordCounts
	err := database.DB.Raw(`
		SELECT p.id AS property_id,
		       COUNT(DISTINCT w.id) AS work_count,
		       COUNT(DISTINCT i.id) AS income_count,
		       COUNT(DISTINCT e.id) AS expense_count
		FROM properties p
		LEFT JOIN work_records w ON w.property_id = p.id
		LEFT JOIN income_records i ON i.property_id = p.id
		LEFT JOIN expense_records e ON e.property_id = p.id
		WHERE p.id IN ?
		GROUP BY p.id
	`, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsByProperty(rows), nil
}

// -------------------------
// Property CRUD
// -------------------------

// POST /api/properties
func CreatePropertyHandler(geocoder *geocode.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Property name is required")
		}
		if strings.TrimSpace(body.Address) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Address is required")
		}

		var purchaseDate *time.Time
		if body.PurchaseDate != nil && *body.PurchaseDate != "" {
			d, err := time.Parse("2006-01-02", *body.PurchaseDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "purchase_date must be 'YYYY-MM-DD'")
			}
			purchaseDate = &d
		}
		if body.PurchasePrice != nil && body.PurchasePrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_price cannot be negative")
		}
		if body.CurrentValue != nil && body.CurrentValue.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "current_value cannot be negative")
		}

		lat, lng := body.Latitude, body.Longitude
		if (lat == nil || lng == nil) && geocoder != nil {
			// Best effort: a property without coordinates simply stays off
			// the map.
			if loc, err := geocoder.Geocode(c.Context(), body.Address); err == nil && loc != nil {
				lat, lng = &loc.Latitude, &loc.Longitude
			}
		}

		property := models.Property{
			Name:          strings.TrimSpace(body.Name),
			Address:       strings.TrimSpace(body.Address),
			Latitude:      lat,
			Longitude:     lng,
			PurchaseDate:  purchaseDate,
			PurchasePrice: body.PurchasePrice,
			CurrentValue:  body.CurrentValue,
			Notes:         strings.TrimSpace(body.Notes),
		}

		if err := database.DB.Create(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save property")
		}

		userID, userName := userInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "property",
			EntityID:    property.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Property added: %s", property.Name),
			Before:      nil,
			After:       toResponse(&property),
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&property))
	}
}

// GET /api/properties?search=melb
// Case-insensitive substring match on name or address; empty search returns
// everything, ordered by id. Hidden properties only show up for admins.
func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := strings.TrimSpace(c.Query("search"))

		dbq := database.DB.Model(&models.Property{})
		if search != "" {
			pattern := searchPattern(search)
			dbq = dbq.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
		}
		if !isAdmin(c) {
			dbq = dbq.Where("is_hidden = ?", false)
		}

		var properties []models.Property
		if err := dbq.Order("id asc").Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list properties")
		}

		ids := make([]uint, 0, len(properties))
		for i := range properties {
			ids = append(ids, properties[i].ID)
		}
		counts, err := countRecords(ids)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count records")
		}

		resp := make([]PropertyListItem, 0, len(properties))
		for i := range properties {
			p := &properties[i]
			n := counts[p.ID]
			resp = append(resp, PropertyListItem{
				PropertyResponse: toResponse(p),
				WorkCount:        n.WorkCount,
				IncomeCount:      n.IncomeCount,
				ExpenseCount:     n.ExpenseCount,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/properties/:id
func GetPropertyHandler() fiber.Handler {
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

		var works []models.WorkRecord
		if err := database.DB.Where("property_id = ?", property.ID).
			Order("date desc, id desc").Find(&works).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load work records")
		}
		var incomes []models.IncomeRecord
		if err := database.DB.Where("property_id = ?", property.ID).
			Order("date desc, id desc").Find(&incomes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load income records")
		}
		var expenses []models.ExpenseRecord
		if err := database.DB.Where("property_id = ?", property.ID).
			Order("date desc, id desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expense records")
		}

		incomeTrend, err := financial.MonthlyIncomeTotals(property.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute income trend")
		}
		expenseTrend, err := financial.MonthlyExpenseTotals(property.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute expense trend")
		}

		detail := PropertyDetailResponse{
			Property:       toResponse(&property),
			WorkRecords:    make([]WorkRecordResponse, 0, len(works)),
			IncomeRecords:  make([]MoneyRecordResponse, 0, len(incomes)),
			ExpenseRecords: make([]MoneyRecordResponse, 0, len(expenses)),
			Totals:         financial.ComputeTotals(incomes, expenses, works),
			Trend:          financial.MergeTrends(incomeTrend, expenseTrend),
		}

		for _, w := range works {
			detail.WorkRecords = append(detail.WorkRecords, WorkRecordResponse{
				ID:            w.ID,
				Description:   w.Description,
				Date:          w.Date.Format("2006-01-02"),
				Cost:          w.Cost,
				PaymentMethod: w.PaymentMethod,
			})
		}
		for _, r := range incomes {
			detail.IncomeRecords = append(detail.IncomeRecords, MoneyRecordResponse{
				ID:            r.ID,
				Amount:        r.Amount,
				Date:          r.Date.Format("2006-01-02"),
				Details:       r.Details,
				PaymentMethod: r.PaymentMethod,
			})
		}
		for _, r := range expenses {
			detail.ExpenseRecords = append(detail.ExpenseRecords, MoneyRecordResponse{
				ID:            r.ID,
				Amount:        r.Amount,
				Date:          r.Date.Format("2006-01-02"),
				Details:       r.Details,
				PaymentMethod: r.PaymentMethod,
			})
		}

		return c.JSON(detail)
	}
}

// PUT /api/properties/:id
func UpdatePropertyHandler() fiber.Handler {
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

		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := toResponse(&property)

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Property name cannot be empty")
			}
			property.Name = strings.TrimSpace(*body.Name)
		}
		if body.Address != nil {
			if strings.TrimSpace(*body.Address) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Address cannot be empty")
			}
			property.Address = strings.TrimSpace(*body.Address)
		}
		if body.Latitude != nil {
			property.Latitude = body.Latitude
		}
		if body.Longitude != nil {
			property.Longitude = body.Longitude
		}
		if body.PurchaseDate != nil {
			if *body.PurchaseDate == "" {
				property.PurchaseDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.PurchaseDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "purchase_date must be 'YYYY-MM-DD'")
				}
				property.PurchaseDate = &d
			}
		}
		if body.PurchasePrice != nil {
			if body.PurchasePrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "purchase_price cannot be negative")
			}
			property.PurchasePrice = body.PurchasePrice
		}
		if body.CurrentValue != nil {
			if body.CurrentValue.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "current_value cannot be negative")
			}
			property.CurrentValue = body.CurrentValue
		}
		if body.Notes != nil {
			property.Notes = strings.TrimSpace(*body.Notes)
		}

		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		userID, userName := userInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "property",
			EntityID:    property.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Property updated: %s", property.Name),
			Before:      before,
			After:       toResponse(&property),
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.JSON(toResponse(&property))
	}
}

// POST /api/properties/:id/visibility
// Flips is_hidden; hidden properties disappear from the list and the map for
// everyone but admins.
func ToggleVisibilityHandler() fiber.Handler {
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

		property.IsHidden = !property.IsHidden
		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"id":        property.ID,
			"is_hidden": property.IsHidden,
		})
	}
}
