package Controllers

import (
	"OpsBoard/AbstractFunctions"
	"OpsBoard/Models"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OperatorController handles the operation-team endpoints
type OperatorController struct {
	DB *gorm.DB
}

// NewOperatorController creates a new OperatorController
func NewOperatorController(db *gorm.DB) *OperatorController {
	return &OperatorController{DB: db}
}

// GetTodayDailyTasks lists today's instances the caller is assigned to
func (c *OperatorController) GetTodayDailyTasks(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var tasks []Models.DailyTaskInstance
	if err := c.DB.
		Joins("JOIN daily_task_operators ON daily_task_operators.daily_task_instance_id = daily_task_instances.id").
		Where("daily_task_operators.operation_team_member_id = ?", operator.ID).
		Where("daily_task_instances.task_date >= ? AND daily_task_instances.task_date < ?", todayStart, tomorrowStart).
		Preload("DefaultTask").
		Find(&tasks).Error; err != nil {
		log.Println("Error fetching daily tasks:", err)
		return internalError(ctx, "Failed to fetch daily tasks")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}

// GetNewTasks lists every one-off task the caller is assigned to,
// regardless of date
func (c *OperatorController) GetNewTasks(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)

	var tasks []Models.NewTask
	if err := c.DB.
		Joins("JOIN new_task_operators ON new_task_operators.new_task_id = new_tasks.id").
		Where("new_task_operators.operation_team_member_id = ?", operator.ID).
		Find(&tasks).Error; err != nil {
		log.Println("Error fetching new tasks:", err)
		return internalError(ctx, "Failed to fetch new tasks")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}

// UpdateDailyTask sets an instance's status. The caller is also added
// to the assignee set, a no-op when already assigned — touching a task
// claims it.
func (c *OperatorController) UpdateDailyTask(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Daily task ID is required")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Invalid request body")
	}
	status := Models.TaskStatus(input.Status)
	if !status.Valid() {
		return validationError(ctx, "Invalid status value")
	}

	var instance Models.DailyTaskInstance
	if err := c.DB.First(&instance, id).Error; err != nil {
		return notFound(ctx, "Daily task not found")
	}

	instance.Status = status
	if err := c.DB.Save(&instance).Error; err != nil {
		log.Println("Error updating daily task:", err)
		return internalError(ctx, "Failed to update daily task")
	}

	var self Models.OperationTeamMember
	if err := c.DB.First(&self, operator.ID).Error; err != nil {
		log.Println("Error loading operator for self-assignment:", err)
		return internalError(ctx, "Failed to update daily task")
	}
	if err := c.DB.Model(&instance).Association("Operators").Append(&self); err != nil {
		log.Println("Error appending operator to daily task:", err)
		return internalError(ctx, "Failed to update daily task")
	}

	return ctx.JSON(fiber.Map{"success": true, "task": instance})
}

// UpdateNewTask sets a one-off task's status with the same
// claim-on-touch behavior as UpdateDailyTask
func (c *OperatorController) UpdateNewTask(ctx *fiber.Ctx) error {
	operator, _ := CurrentPrincipal(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Task ID is required")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Invalid request body")
	}
	status := Models.TaskStatus(input.Status)
	if !status.Valid() {
		return validationError(ctx, "Invalid status value")
	}

	var task Models.NewTask
	if err := c.DB.First(&task, id).Error; err != nil {
		return notFound(ctx, "New task not found")
	}

	task.Status = status
	if err := c.DB.Save(&task).Error; err != nil {
		log.Println("Error updating new task:", err)
		return internalError(ctx, "Failed to update new task")
	}

	var self Models.OperationTeamMember
	if err := c.DB.First(&self, operator.ID).Error; err != nil {
		log.Println("Error loading operator for self-assignment:", err)
		return internalError(ctx, "Failed to update new task")
	}
	if err := c.DB.Model(&task).Association("Operators").Append(&self); err != nil {
		log.Println("Error appending operator to new task:", err)
		return internalError(ctx, "Failed to update new task")
	}

	return ctx.JSON(fiber.Map{"success": true, "task": task})
}
