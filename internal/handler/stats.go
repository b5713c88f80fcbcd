package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"DayFlow/internal/middleware"
	"DayFlow/internal/service"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/pkg/response"
)

// GetDashboard 仪表盘统计，window 取 7 或 30，缺省 7
// GET /v1/stats/dashboard?window=7
func GetDashboard(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("user ID not found in context"))
		return
	}

	window := 7
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(ctx, c, pkgerrors.InvalidWindow)
			return
		}
		window = parsed
	}

	result, err := service.Stats().Dashboard(ctx, userID, window)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
