package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// ExportHandler writes the active member roll as an XLSX workbook.
type ExportHandler struct {
	Store store.Store
}

func NewExportHandler(s store.Store) *ExportHandler {
	return &ExportHandler{Store: s}
}

func (h *ExportHandler) Members(c *gin.Context) {
	var members []models.Member
	err := h.Store.Find(c.Request.Context(), store.Members, bson.M{"is_active": true}, &store.FindOptions{
		Sort: bson.D{{Key: "pib", Value: 1}},
	}, &members)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch members"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Члени церкви"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build export"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"№", "ПІБ", "Стать", "Дата народження", "Телефон", "Email", "Сімейний стан", "Освіта", "Професія", "Дата хрещення"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	str := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	for i, m := range members {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.OriginalID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.PIB)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.GenderUkr)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), str(m.BirthDate))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.PhoneMobile)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.Email)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), m.MaritalStatus)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), m.Education)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), m.Profession)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), str(m.BaptismDate))
	}

	c.Header("Content-Disposition", `attachment; filename="members.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
