package export

import "time"

// 导出格式
const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// 导出范围
const (
	ScopeAll    = "all"
	ScopeTasks  = "tasks"
	ScopeHabits = "habits"
)

// TaskRow 导出文件里的一行任务
type TaskRow struct {
	Title       string
	Priority    string
	Status      string
	DueDate     string
	CompletedAt string
}

// HabitRow 导出文件里的一行习惯
type HabitRow struct {
	Title         string
	CurrentStreak int
	LongestStreak int
	LastCompleted string
	Risk          string
}

// Payload 渲染导出文件所需的全部数据
type Payload struct {
	Username    string
	GeneratedAt time.Time
	Scope       string
	Tasks       []TaskRow
	Habits      []HabitRow
}

// ValidFormat 校验导出格式
func ValidFormat(f string) bool {
	return f == FormatExcel || f == FormatPDF
}

// ValidScope 校验导出范围
func ValidScope(s string) bool {
	return s == ScopeAll || s == ScopeTasks || s == ScopeHabits
}

func (p *Payload) includeTasks() bool {
	return p.Scope == ScopeAll || p.Scope == ScopeTasks
}

func (p *Payload) includeHabits() bool {
	return p.Scope == ScopeAll || p.Scope == ScopeHabits
}
