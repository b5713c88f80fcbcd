package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// WritePDF 把导出数据渲染成 PDF 写入 w
func WritePDF(p *Payload, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("DayFlow Export", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("DayFlow Export - %s", p.Username))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated at "+p.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	if p.includeTasks() {
		writeTaskTable(pdf, p.Tasks)
	}
	if p.includeHabits() {
		if p.includeTasks() {
			pdf.Ln(8)
		}
		writeHabitTable(pdf, p.Habits)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeTaskTable(pdf *fpdf.Fpdf, tasks []TaskRow) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Tasks")
	pdf.Ln(8)

	widths := []float64{70, 25, 25, 35, 35}
	writeTableHeader(pdf, widths, "Title", "Priority", "Status", "Due Date", "Completed At")

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tasks {
		writeTableRow(pdf, widths, t.Title, t.Priority, t.Status, t.DueDate, t.CompletedAt)
	}
	if len(tasks) == 0 {
		writeEmptyRow(pdf, widths)
	}
}

func writeHabitTable(pdf *fpdf.Fpdf, habits []HabitRow) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Habits")
	pdf.Ln(8)

	widths := []float64{70, 30, 30, 35, 25}
	writeTableHeader(pdf, widths, "Habit", "Current Streak", "Longest Streak", "Last Completed", "Risk")

	pdf.SetFont("Helvetica", "", 9)
	for _, h := range habits {
		writeTableRow(pdf, widths, h.Title,
			strconv.Itoa(h.CurrentStreak), strconv.Itoa(h.LongestStreak), h.LastCompleted, h.Risk)
	}
	if len(habits) == 0 {
		writeEmptyRow(pdf, widths)
	}
}

func writeTableHeader(pdf *fpdf.Fpdf, widths []float64, headers ...string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(67, 160, 71)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func writeTableRow(pdf *fpdf.Fpdf, widths []float64, cells ...string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func writeEmptyRow(pdf *fpdf.Fpdf, widths []float64) {
	var total float64
	for _, w := range widths {
		total += w
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(total, 6, "no records", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
}
