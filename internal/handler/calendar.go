package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"DayFlow/internal/middleware"
	"DayFlow/internal/service"
	"DayFlow/pkg/response"
)

// GetCalendarEvents 查询日历事件投影
// GET /v1/calendar/events?from=2024-03-01&to=2024-03-31&kind=all
func GetCalendarEvents(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("user ID not found in context"))
		return
	}

	result, err := service.Calendar().Events(ctx, userID,
		c.Query("from"), c.Query("to"), c.Query("kind"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
