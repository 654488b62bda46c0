package importer

import (
	"fmt"
	"os"
	"strings"

	"propintel-backend/internal/audit"
	"propintel-backend/internal/auth"
	"propintel-backend/internal/database"
	"propintel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "importer").Logger()

type ImportResponse struct {
	Batch    string   `json:"batch"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type importState struct {
	imported int
	skipped  int
	errors   []string
	// property name (lowercased) -> id, for record sheets
	propertyIDs map[string]uint
}

func (s *importState) fail(sheet string, rowNum int, err error) {
	s.skipped++
	s.errors = append(s.errors, fmt.Sprintf("%s row %d: %v", sheet, rowNum, err))
}

// POST /api/import/excel
// Bulk import from the legacy tracking workbook. Expects sheets named
// Properties, Work, Income and Expenses, each with a header row. Rows that
// fail validation are reported and skipped, never half-written.
func ImportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		batch := uuid.NewString()
		state := &importState{propertyIDs: make(map[string]uint)}

		// Seed the lookup with properties that already exist
		var existing []models.Property
		if err := database.DB.Find(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load properties")
		}
		for _, p := range existing {
			state.propertyIDs[strings.ToLower(p.Name)] = p.ID
		}

		importProperties(excelFile, state)
		importRecords(excelFile, "Work", state, false, insertWorkRecord)
		importRecords(excelFile, "Income", state, true, insertIncomeRecord)
		importRecords(excelFile, "Expenses", state, true, insertExpenseRecord)

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		userName, _ := c.Locals(auth.CtxUsernameKey).(string)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "import",
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("Excel import %s: %d imported, %d skipped", batch, state.imported, state.skipped),
			After: fiber.Map{
				"batch":    batch,
				"file":     fileHeader.Filename,
				"imported": state.imported,
				"skipped":  state.skipped,
			},
		}); logErr != nil {
			logger.Warn().Err(logErr).Msg("could not write audit log")
		}

		logger.Info().Str("batch", batch).Int("imported", state.imported).
			Int("skipped", state.skipped).Msg("excel import finished")

		if state.errors == nil {
			state.errors = []string{}
		}
		return c.JSON(ImportResponse{
			Batch:    batch,
			Imported: state.imported,
			Skipped:  state.skipped,
			Errors:   state.errors,
		})
	}
}

func sheetRows(f *excelize.File, sheet string) ([][]string, bool) {
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, sheet) {
			rows, err := f.GetRows(name)
			if err != nil {
				return nil, false
			}
			return rows, true
		}
	}
	return nil, false
}

func importProperties(f *excelize.File, state *importState) {
	rows, ok := sheetRows(f, "Properties")
	if !ok {
		return
	}

	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		row, err := ParsePropertyRow(cells)
		if err != nil {
			if err == ErrEmptyRow {
				continue
			}
			state.fail("Properties", i+1, err)
			continue
		}

		key := strings.ToLower(row.Name)
		if _, exists := state.propertyIDs[key]; exists {
			state.skipped++
			continue
		}

		property := models.Property{
			Name:          row.Name,
			Address:       row.Address,
			Latitude:      row.Latitude,
			Longitude:     row.Longitude,
			PurchaseDate:  row.PurchaseDate,
			PurchasePrice: row.PurchasePrice,
			Notes:         row.Notes,
		}
		if err := database.DB.Create(&property).Error; err != nil {
			state.fail("Properties", i+1, err)
			continue
		}
		state.propertyIDs[key] = property.ID
		state.imported++
	}
}

func importRecords(f *excelize.File, sheet string, state *importState, requirePositive bool, insert func(propertyID uint, row *RecordRow) error) {
	rows, ok := sheetRows(f, sheet)
	if !ok {
		return
	}

	for i, cells := range rows {
		if i == 0 {
			continue
		}
		row, err := ParseRecordRow(cells, requirePositive)
		if err != nil {
			if err == ErrEmptyRow {
				continue
			}
			state.fail(sheet, i+1, err)
			continue
		}

		propertyID, ok := state.propertyIDs[strings.ToLower(row.PropertyName)]
		if !ok {
			state.fail(sheet, i+1, fmt.Errorf("unknown property %q", row.PropertyName))
			continue
		}

		if err := insert(propertyID, row); err != nil {
			state.fail(sheet, i+1, err)
			continue
		}
		state.imported++
	}
}

func insertWorkRecord(propertyID uint, row *RecordRow) error {
	return database.DB.Create(&models.WorkRecord{
		PropertyID:    propertyID,
		Description:   row.Details,
		Date:          row.Date,
		Cost:          row.Amount,
		PaymentMethod: row.PaymentMethod,
	}).Error
}

func insertIncomeRecord(propertyID uint, row *RecordRow) error {
	return database.DB.Create(&models.IncomeRecord{
		PropertyID:    propertyID,
		Amount:        row.Amount,
		Date:          row.Date,
		Details:       row.Details,
		PaymentMethod: row.PaymentMethod,
	}).Error
}

func insertExpenseRecord(propertyID uint, row *RecordRow) error {
	return database.DB.Create(&models.ExpenseRecord{
		PropertyID:    propertyID,
		Amount:        row.Amount,
		Date:          row.Date,
		Details:       row.Details,
		PaymentMethod: row.PaymentMethod,
	}).Error
}
