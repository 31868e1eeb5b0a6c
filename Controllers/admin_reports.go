package Controllers

import (
	"OpsBoard/AbstractFunctions"
	"OpsBoard/Models"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type bucketRow struct {
	Bucket string
	Count  int64
}

// AssigneeWorkload is one operator's share of today's tasks, bucketed
// by status across both task tables.
type AssigneeWorkload struct {
	OperatorID uint   `json:"operatorId"`
	Name       string `json:"name"`
	Pending    int64  `json:"pending"`
	InProgress int64  `json:"inProgress"`
	Completed  int64  `json:"completed"`
	Total      int64  `json:"total"`
}

// GetTotalTasks returns today's task volume: daily instances by task
// date plus one-off tasks created today. The two counts are separate
// queries and are not snapshot-consistent with each other.
func (c *AdminController) GetTotalTasks(ctx *fiber.Ctx) error {
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var dailyCount, newCount int64
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Where("task_date >= ? AND task_date < ?", todayStart, tomorrowStart).
		Count(&dailyCount).Error; err != nil {
		log.Println("Error counting daily tasks:", err)
		return internalError(ctx, "Failed to fetch task totals")
	}
	if err := c.DB.Model(&Models.NewTask{}).
		Where("created_at >= ? AND created_at < ?", todayStart, tomorrowStart).
		Count(&newCount).Error; err != nil {
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

// GetTodayTaskCompletion reports completed/total across both task
// tables for today, with the rate rounded to two decimals. A day with
// no tasks reports rate 0.
func (c *AdminController) GetTodayTaskCompletion(ctx *fiber.Ctx) error {
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var dailyTotal, dailyDone, newTotal, newDone int64
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Where("task_date >= ? AND task_date < ?", todayStart, tomorrowStart).
		Count(&dailyTotal).Error; err != nil {
		log.Println("Error counting daily tasks:", err)
		return internalError(ctx, "Failed to fetch completion")
	}
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Where("task_date >= ? AND task_date < ?", todayStart, tomorrowStart).
		Where("status = ?", Models.StatusCompleted).
		Count(&dailyDone).Error; err != nil {
		log.Println("Error counting completed daily tasks:", err)
		return internalError(ctx, "Failed to fetch completion")
	}
	if err := c.DB.Model(&Models.NewTask{}).
		Where("created_at >= ? AND created_at < ?", todayStart, tomorrowStart).
		Count(&newTotal).Error; err != nil {
		log.Println("Error counting new tasks:", err)
		return internalError(ctx, "Failed to fetch completion")
	}
	if err := c.DB.Model(&Models.NewTask{}).
		Where("created_at >= ? AND created_at < ?", todayStart, tomorrowStart).
		Where("status = ?", Models.StatusCompleted).
		Count(&newDone).Error; err != nil {
		log.Println("Error counting completed new tasks:", err)
		return internalError(ctx, "Failed to fetch completion")
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

// GetDailyStatusCount tallies today's tasks by status, merged across
// both task tables into one three-bucket result
func (c *AdminController) GetDailyStatusCount(ctx *fiber.Ctx) error {
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	tally := map[Models.TaskStatus]int64{
		Models.StatusPending:    0,
		Models.StatusInProgress: 0,
		Models.StatusCompleted:  0,
	}

	var dailyRows []bucketRow
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Select("status as bucket, count(*) as count").
		Where("task_date >= ? AND task_date < ?", todayStart, tomorrowStart).
		Group("status").
		Scan(&dailyRows).Error; err != nil {
		log.Println("Error grouping daily tasks by status:", err)
		return internalError(ctx, "Failed to fetch status counts")
	}
	for _, row := range dailyRows {
		tally[Models.TaskStatus(row.Bucket)] += row.Count
	}

	var newRows []bucketRow
	if err := c.DB.Model(&Models.NewTask{}).
		Select("status as bucket, count(*) as count").
		Where("created_at >= ? AND created_at < ?", todayStart, tomorrowStart).
		Group("status").
		Scan(&newRows).Error; err != nil {
		log.Println("Error grouping new tasks by status:", err)
		return internalError(ctx, "Failed to fetch status counts")
	}
	for _, row := range newRows {
		tally[Models.TaskStatus(row.Bucket)] += row.Count
	}

	return ctx.JSON(fiber.Map{"success": true, "data": tally})
}

// GetPriorityCount tallies today's tasks by priority, merged across
// both task tables
func (c *AdminController) GetPriorityCount(ctx *fiber.Ctx) error {
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	tally := map[Models.Priority]int64{
		Models.PriorityLow:    0,
		Models.PriorityMedium: 0,
		Models.PriorityHigh:   0,
	}

	var dailyRows []bucketRow
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Select("priority as bucket, count(*) as count").
		Where("task_date >= ? AND task_date < ?", todayStart, tomorrowStart).
		Group("priority").
		Scan(&dailyRows).Error; err != nil {
		log.Println("Error grouping daily tasks by priority:", err)
		return internalError(ctx, "Failed to fetch priority counts")
	}
	for _, row := range dailyRows {
		tally[Models.Priority(row.Bucket)] += row.Count
	}

	var newRows []bucketRow
	if err := c.DB.Model(&Models.NewTask{}).
		Select("priority as bucket, count(*) as count").
		Where("created_at >= ? AND created_at < ?", todayStart, tomorrowStart).
		Group("priority").
		Scan(&newRows).Error; err != nil {
		log.Println("Error grouping new tasks by priority:", err)
		return internalError(ctx, "Failed to fetch priority counts")
	}
	for _, row := range newRows {
		tally[Models.Priority(row.Bucket)] += row.Count
	}

	return ctx.JSON(fiber.Map{"success": true, "data": tally})
}

func (c *AdminController) assigneeWorkload() ([]AssigneeWorkload, error) {
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var operators []OperatorSummary
	if err := c.DB.Model(&Models.OperationTeamMember{}).
		Select("id", "name").
		Order("name asc").
		Scan(&operators).Error; err != nil {
		return nil, err
	}

	workload := make([]AssigneeWorkload, len(operators))
	index := make(map[uint]int, len(operators))
	for i, op := range operators {
		workload[i] = AssigneeWorkload{OperatorID: op.ID, Name: op.Name}
		index[op.ID] = i
	}

	type workloadRow struct {
		OperatorID uint
		Status     Models.TaskStatus
		Count      int64
	}

	apply := func(rows []workloadRow) {
		for _, row := range rows {
			i, ok := index[row.OperatorID]
			if !ok {
				continue
			}
			switch row.Status {
			case Models.StatusPending:
				workload[i].Pending += row.Count
			case Models.StatusInProgress:
				workload[i].InProgress += row.Count
			case Models.StatusCompleted:
				workload[i].Completed += row.Count
			}
			workload[i].Total += row.Count
		}
	}

	var dailyRows []workloadRow
	if err := c.DB.Model(&Models.DailyTaskInstance{}).
		Select("daily_task_operators.operation_team_member_id as operator_id, daily_task_instances.status as status, count(*) as count").
		Joins("JOIN daily_task_operators ON daily_task_operators.daily_task_instance_id = daily_task_instances.id").
		Where("daily_task_instances.task_date >= ? AND daily_task_instances.task_date < ?", todayStart, tomorrowStart).
		Group("daily_task_operators.operation_team_member_id, daily_task_instances.status").
		Scan(&dailyRows).Error; err != nil {
		return nil, err
	}
	apply(dailyRows)

	var newRows []workloadRow
	if err := c.DB.Model(&Models.NewTask{}).
		Select("new_task_operators.operation_team_member_id as operator_id, new_tasks.status as status, count(*) as count").
		Joins("JOIN new_task_operators ON new_task_operators.new_task_id = new_tasks.id").
		Where("new_tasks.created_at >= ? AND new_tasks.created_at < ?", todayStart, tomorrowStart).
		Group("new_task_operators.operation_team_member_id, new_tasks.status").
		Scan(&newRows).Error; err != nil {
		return nil, err
	}
	apply(newRows)

	return workload, nil
}

// GetAssigneeWorkload reports per-operator counts of today's assigned
// tasks bucketed by status, plus a total
func (c *AdminController) GetAssigneeWorkload(ctx *fiber.Ctx) error {
	workload, err := c.assigneeWorkload()
	if err != nil {
		log.Println("Error computing assignee workload:", err)
		return internalError(ctx, "Failed to fetch assignee workload")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(workload),
		"data":    workload,
	})
}

// ExportAssigneeWorkload renders the workload report as a downloadable
// Excel sheet
func (c *AdminController) ExportAssigneeWorkload(ctx *fiber.Ctx) error {
	workload, err := c.assigneeWorkload()
	if err != nil {
		log.Println("Error computing assignee workload:", err)
		return internalError(ctx, "Failed to export assignee workload")
	}

	f := excelize.NewFile()
	sheetName := "Workload"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Println("Error creating workload sheet:", err)
		return internalError(ctx, "Failed to export assignee workload")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Operator ID", "Name", "Pending", "In Progress", "Completed", "Total"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, entry := range workload {
		row := rowIndex + 2
		values := []interface{}{
			entry.OperatorID,
			entry.Name,
			entry.Pending,
			entry.InProgress,
			entry.Completed,
			entry.Total,
		}
		for i, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		log.Println("Error writing workload sheet:", err)
		return internalError(ctx, "Failed to export assignee workload")
	}

	filename := fmt.Sprintf("workload_export_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	return ctx.Send(buffer.Bytes())
}
