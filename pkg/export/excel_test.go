package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func samplePayload(scope string) *Payload {
	return &Payload{
		Username:    "alice",
		GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Scope:       scope,
		Tasks: []TaskRow{
			{Title: "Ship release", Priority: "high", Status: "pending", DueDate: "2024-03-20"},
			{Title: "Pay rent", Priority: "medium", Status: "completed", DueDate: "2024-03-01", CompletedAt: "2024-02-28"},
		},
		Habits: []HabitRow{
			{Title: "Morning run", CurrentStreak: 5, LongestStreak: 12, LastCompleted: "2024-03-15", Risk: "safe"},
		},
	}
}

func TestWriteExcelAllScope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(samplePayload(ScopeAll), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Tasks", "Habits"}, f.GetSheetList())

	title, err := f.GetCellValue("Tasks", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ship release", title)

	status, err := f.GetCellValue("Tasks", "C3")
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	streak, err := f.GetCellValue("Habits", "B2")
	require.NoError(t, err)
	assert.Equal(t, "5", streak)

	header, err := f.GetCellValue("Habits", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Habit", header)
}

func TestWriteExcelScopedSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(samplePayload(ScopeTasks), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Tasks"}, f.GetSheetList())
}

func TestWriteExcelEmptyPayload(t *testing.T) {
	p := &Payload{Username: "bob", GeneratedAt: time.Now(), Scope: ScopeAll}

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(p, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// 只有表头
	rows, err := f.GetRows("Tasks")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(samplePayload(ScopeAll), &buf))

	out := buf.Bytes()
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestValidFormatAndScope(t *testing.T) {
	assert.True(t, ValidFormat(FormatExcel))
	assert.True(t, ValidFormat(FormatPDF))
	assert.False(t, ValidFormat("csv"))

	assert.True(t, ValidScope(ScopeAll))
	assert.True(t, ValidScope(ScopeHabits))
	assert.False(t, ValidScope("everything"))
}
