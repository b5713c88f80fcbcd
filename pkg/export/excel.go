package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetTasks  = "Tasks"
	sheetHabits = "Habits"
)

var taskHeaders = []string{"Title", "Priority", "Status", "Due Date", "Completed At"}
var habitHeaders = []string{"Habit", "Current Streak", "Longest Streak", "Last Completed", "Risk"}

// WriteExcel 把导出数据渲染成 xlsx 写入 w
func WriteExcel(p *Payload, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"43A047"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	first := true
	if p.includeTasks() {
		if err := writeTaskSheet(f, p, headerStyle, first); err != nil {
			return err
		}
		first = false
	}
	if p.includeHabits() {
		if err := writeHabitSheet(f, p, headerStyle, first); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// 第一张表复用 excelize 默认创建的 Sheet1
func ensureSheet(f *excelize.File, name string, first bool) error {
	if first {
		return f.SetSheetName("Sheet1", name)
	}
	_, err := f.NewSheet(name)
	return err
}

func writeTaskSheet(f *excelize.File, p *Payload, headerStyle int, first bool) error {
	if err := ensureSheet(f, sheetTasks, first); err != nil {
		return err
	}

	if err := writeHeaderRow(f, sheetTasks, taskHeaders, headerStyle); err != nil {
		return err
	}
	for i, t := range p.Tasks {
		row := i + 2
		cells := []interface{}{t.Title, t.Priority, t.Status, t.DueDate, t.CompletedAt}
		if err := setRow(f, sheetTasks, row, cells); err != nil {
			return err
		}
	}

	f.SetColWidth(sheetTasks, "A", "A", 40)
	f.SetColWidth(sheetTasks, "B", "E", 16)
	return nil
}

func writeHabitSheet(f *excelize.File, p *Payload, headerStyle int, first bool) error {
	if err := ensureSheet(f, sheetHabits, first); err != nil {
		return err
	}

	if err := writeHeaderRow(f, sheetHabits, habitHeaders, headerStyle); err != nil {
		return err
	}
	for i, h := range p.Habits {
		row := i + 2
		cells := []interface{}{h.Title, h.CurrentStreak, h.LongestStreak, h.LastCompleted, h.Risk}
		if err := setRow(f, sheetHabits, row, cells); err != nil {
			return err
		}
	}

	f.SetColWidth(sheetHabits, "A", "A", 40)
	f.SetColWidth(sheetHabits, "B", "E", 16)
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
