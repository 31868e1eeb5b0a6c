package Controllers

import (
	"OpsBoard/AbstractFunctions"
	"OpsBoard/Models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// The operator report endpoints mirror the admin shapes, scoped to
// tasks assigned to the caller. Daily instances filter on task date,
// one-off tasks on creation date, both against the same today window.

func (c *OperatorController) todayDailyScope(operatorID uint, start, end time.Time) *gorm.DB {
	return c.DB.Model(&Models.DailyTaskInstance{}).
		Joins("JOIN daily_task_operators ON daily_task_operators.daily_task_instance_id = daily_task_instances.id").
		Where("daily_task_operators.operation_team_member_id = ?", operatorID).
		Where("daily_task_instances.task_date >= ? AND daily_task_instances.task_date < ?", start, end)
}

func (c *OperatorController) todayNewScope(operatorID uint, start, end time.Time) *gorm.DB {
	return c.DB.Model(&Models.NewTask{}).
		Joins("JOIN new_task_operators ON new_task_operators.new_task_id = new_tasks.id").
		Where("new_task_operators.operation_team_member_id = ?", operatorID).
		Where("new_tasks.created_at >= ? AND new_tasks.created_at < ?", start, end)
}

// GetTodayTotalTasks counts today's assigned tasks across both tables
func (c *OperatorController) GetTodayTotalTasks(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var dailyCount, newCount int64
	if err := c.todayDailyScope(operator.ID, todayStart, tomorrowStart).Count(&dailyCount).Error; err != nil {
		log.Println("Error counting daily tasks:", err)
		return internalError(ctx, "Failed to fetch task totals")
	}
	if err := c.todayNewScope(operator.ID, todayStart, tomorrowStart).Count(&newCount).Error; err != nil {
		log.Println("Error counting new tasks:", err)
		return internalError(ctx, "Failed to fetch task totals")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"dailyTasks": dailyCount,
			"newTasks":   newCount,
			"total":      dailyCount + newCount,
		},
	})
}

// GetCompletionRate reports completed/total over today's assigned
// tasks, rounded to two decimals. Zero tasks report rate 0, not an
// error.
func (c *OperatorController) GetCompletionRate(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var dailyTotal, dailyDone, newTotal, newDone int64
	if err := c.todayDailyScope(operator.ID, todayStart, tomorrowStart).Count(&dailyTotal).Error; err != nil {
		log.Println("Error counting daily tasks:", err)
		return internalError(ctx, "Failed to fetch completion rate")
	}
	if err := c.todayDailyScope(operator.ID, todayStart, tomorrowStart).
		Where("daily_task_instances.status = ?", Models.StatusCompleted).
		Count(&dailyDone).Error; err != nil {
		log.Println("Error counting completed daily tasks:", err)
		return internalError(ctx, "Failed to fetch completion rate")
	}
	if err := c.todayNewScope(operator.ID, todayStart, tomorrowStart).Count(&newTotal).Error; err != nil {
		log.Println("Error counting new tasks:", err)
		return internalError(ctx, "Failed to fetch completion rate")
	}
	if err := c.todayNewScope(operator.ID, todayStart, tomorrowStart).
		Where("new_tasks.status = ?", Models.StatusCompleted).
		Count(&newDone).Error; err != nil {
		log.Println("Error counting completed new tasks:", err)
		return internalError(ctx, "Failed to fetch completion rate")
	}

	total := dailyTotal + newTotal
	completed := dailyDone + newDone
	rate := 0.0
	if total > 0 {
		rate = AbstractFunctions.RoundRate(float64(completed) / float64(total))
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"completed":      completed,
			"total":          total,
			"completionRate": rate,
		},
	})
}

// GetStatusCountDaily tallies today's assigned tasks by status
func (c *OperatorController) GetStatusCountDaily(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	tally := map[Models.TaskStatus]int64{
		Models.StatusPending:    0,
		Models.StatusInProgress: 0,
		Models.StatusCompleted:  0,
	}

	var dailyRows []bucketRow
	if err := c.todayDailyScope(operator.ID, todayStart, tomorrowStart).
		Select("daily_task_instances.status as bucket, count(*) as count").
		Group("daily_task_instances.status").
		Scan(&dailyRows).Error; err != nil {
		log.Println("Error grouping daily tasks by status:", err)
		return internalError(ctx, "Failed to fetch status counts")
	}
	for _, row := range dailyRows {
		tally[Models.TaskStatus(row.Bucket)] += row.Count
	}

	var newRows []bucketRow
	if err := c.todayNewScope(operator.ID, todayStart, tomorrowStart).
		Select("new_tasks.status as bucket, count(*) as count").
		Group("new_tasks.status").
		Scan(&newRows).Error; err != nil {
		log.Println("Error grouping new tasks by status:", err)
		return internalError(ctx, "Failed to fetch status counts")
	}
	for _, row := range newRows {
		tally[Models.TaskStatus(row.Bucket)] += row.Count
	}

	return ctx.JSON(fiber.Map{"success": true, "data": tally})
}

// GetPriorityCount tallies today's assigned tasks by priority
func (c *OperatorController) GetPriorityCount(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	tally := map[Models.Priority]int64{
		Models.PriorityLow:    0,
		Models.PriorityMedium: 0,
		Models.PriorityHigh:   0,
	}

	var dailyRows []bucketRow
	if err := c.todayDailyScope(operator.ID, todayStart, tomorrowStart).
		Select("daily_task_instances.priority as bucket, count(*) as count").
		Group("daily_task_instances.priority").
		Scan(&dailyRows).Error; err != nil {
		log.Println("Error grouping daily tasks by priority:", err)
		return internalError(ctx, "Failed to fetch priority counts")
	}
	for _, row := range dailyRows {
		tally[Models.Priority(row.Bucket)] += row.Count
	}

	var newRows []bucketRow
	if err := c.todayNewScope(operator.ID, todayStart, tomorrowStart).
		Select("new_tasks.priority as bucket, count(*) as count").
		Group("new_tasks.priority").
		Scan(&newRows).Error; err != nil {
		log.Println("Error grouping new tasks by priority:", err)
		return internalError(ctx, "Failed to fetch priority counts")
	}
	for _, row := range newRows {
		tally[Models.Priority(row.Bucket)] += row.Count
	}

	return ctx.JSON(fiber.Map{"success": true, "data": tally})
}
