package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GET /api/transactions/export?bulan=1&tahun=2025
// Streams the ledger (optionally one month) as a styled xlsx report.
func exportTransactionsHandler(c *gin.Context) {
	var trx []models.Transaction
	query := db.Order("tanggal desc")

	bulanStr := c.Query("bulan")
	tahunStr := c.Query("tahun")
	if bulanStr != "" && tahunStr != "" {
		bulan, err1 := strconv.Atoi(bulanStr)
		tahun, err2 := strconv.Atoi(tahunStr)
		if err1 != nil || err2 != nil || bulan < 1 || bulan > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bulan/tahun tidak valid"})
			return
		}
		start, end := monthRange(bulan, tahun)
		query = query.Where("tanggal >= ? AND tanggal < ?", start, end)
	}
	if err := query.Find(&trx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Laporan Keuangan"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "Tanggal", "Tipe", "Kategori", "Sumber", "Jumlah (Rp)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "F1", styleHeader)

	styleIncome, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#10B981"}})
	styleExpense, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})

	row := 2
	for i, t := range trx {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Tanggal.Format("02-01-2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), strings.ToUpper(t.Tipe))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Kategori)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Sumber)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.Jumlah)

		if t.Tipe == models.TrxPemasukan {
			f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styleIncome)
		} else {
			f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styleExpense)
		}
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "D", 15)
	f.SetColWidth(sheetName, "E", "E", 35)
	f.SetColWidth(sheetName, "F", "F", 20)

	fileName := fmt.Sprintf("Laporan_Kosman_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal generate excel"})
	}
}
