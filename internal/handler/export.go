package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"smart-billing/internal/models"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the sales ledger as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// saleExportRow is one exported ledger line.
type saleExportRow struct {
	SaleID    uint
	Customer  string
	Date      time.Time
	Status    string
	TotalCent int64
}

func (h *ExportHandler) loadRows() ([]saleExportRow, error) {
	var rows []saleExportRow
	err := h.DB.Model(&models.Sale{}).
		Select("sales.id AS sale_id, customers.name AS customer, sales.date, sales.status, sales.total_cent").
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Order("sales.date DESC, sales.id DESC").
		Scan(&rows).Error
	return rows, err
}

var exportHeaders = []string{"Sale ID", "Customer", "Date", "Status", "Total"}

// ExportCSV streams the sales ledger as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, err := h.loadRows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query sales failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"sales_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, row := range rows {
		writer.Write([]string{
			fmt.Sprintf("%d", row.SaleID),
			row.Customer,
			row.Date.Format("2006-01-02"),
			row.Status,
			util.FormatAmount(row.TotalCent),
		})
	}
}

// ExportXLSX downloads the sales ledger as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, err := h.loadRows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query sales failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, row := range rows {
		rowNum := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), row.SaleID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.Customer)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), row.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), util.FormatAmount(row.TotalCent))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"sales_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
