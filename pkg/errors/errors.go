package errors

import "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	UsernameTaken      = Definition{Code: "USERNAME_TAKEN", Message: "Username already registered"}
	EmailTaken         = Definition{Code: "EMAIL_TAKEN", Message: "Email already registered"}
	InvalidCredentials = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID      = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound       = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	TooManyRequests    = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// 任务模块错误。
var (
	TaskNotFound    = Definition{Code: "TASK_NOT_FOUND", Message: "Task not found"}
	TaskInvalidDue  = Definition{Code: "TASK_INVALID_DUE_DATE", Message: "Task due date invalid"}
	InvalidPriority = Definition{Code: "INVALID_PRIORITY", Message: "Invalid task priority"}
	InvalidStatus   = Definition{Code: "INVALID_STATUS", Message: "Invalid status filter"}
)

// 习惯模块错误。
var (
	HabitNotFound       = Definition{Code: "HABIT_NOT_FOUND", Message: "Habit not found"}
	HabitInactive       = Definition{Code: "HABIT_INACTIVE", Message: "Habit is not active"}
	InvalidReminderTime = Definition{Code: "INVALID_REMINDER_TIME", Message: "Reminder time must be HH:MM"}
)

// 统计与日历模块错误。
var (
	InvalidWindow    = Definition{Code: "INVALID_WINDOW", Message: "Window must be 7 or 30 days"}
	InvalidDateRange = Definition{Code: "INVALID_DATE_RANGE", Message: "Invalid date range"}
	InvalidEventKind = Definition{Code: "INVALID_EVENT_KIND", Message: "Event kind must be all, tasks or habits"}
)

// 导出模块错误。
var (
	ExportNotFound      = Definition{Code: "EXPORT_NOT_FOUND", Message: "Export job not found"}
	ExportNotReady      = Definition{Code: "EXPORT_NOT_READY", Message: "Export job not finished yet"}
	ExportFailed        = Definition{Code: "EXPORT_FAILED", Message: "Export job failed"}
	ExportFormatInvalid = Definition{Code: "EXPORT_FORMAT_INVALID", Message: "Export format must be xlsx or pdf"}
	ExportScopeInvalid  = Definition{Code: "EXPORT_SCOPE_INVALID", Message: "Export scope must be all, tasks or habits"}
)

// 基础设施侧 sentinel 错误，走 %w 包装而不是业务错误码。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected jwt signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token claims")
)

// SkipMessageError 消费者跳过重复消息时返回，handler 对它做 Ack 而不是 Nack。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkip 判断消费失败是否其实是主动跳过。
func IsSkip(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	UsernameTaken.Code:       UsernameTaken,
	EmailTaken.Code:          EmailTaken,
	InvalidCredentials.Code:  InvalidCredentials,
	Unauthorized.Code:        Unauthorized,
	InvalidUserID.Code:       InvalidUserID,
	UserNotFound.Code:        UserNotFound,
	TooManyRequests.Code:     TooManyRequests,
	TaskNotFound.Code:        TaskNotFound,
	TaskInvalidDue.Code:      TaskInvalidDue,
	InvalidPriority.Code:     InvalidPriority,
	InvalidStatus.Code:       InvalidStatus,
	HabitNotFound.Code:       HabitNotFound,
	HabitInactive.Code:       HabitInactive,
	InvalidReminderTime.Code: InvalidReminderTime,
	InvalidWindow.Code:       InvalidWindow,
	InvalidDateRange.Code:    InvalidDateRange,
	InvalidEventKind.Code:    InvalidEventKind,
	ExportNotFound.Code:      ExportNotFound,
	ExportNotReady.Code:      ExportNotReady,
	ExportFailed.Code:        ExportFailed,
	ExportFormatInvalid.Code: ExportFormatInvalid,
	ExportScopeInvalid.Code:  ExportScopeInvalid,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
