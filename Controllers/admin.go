package Controllers

import (
	"OpsBoard/AbstractFunctions"
	"OpsBoard/Models"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminController handles the admin-facing task endpoints
type AdminController struct {
	DB *gorm.DB
}

// NewAdminController creates a new AdminController
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// OperatorSummary is the {id,name} shape task listings embed for
// assignees.
type OperatorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

var errUnknownOperator = errors.New("one or more operator ids do not exist")

func (c *AdminController) loadOperators(ids []uint) ([]Models.OperationTeamMember, error) {
	var operators []Models.OperationTeamMember
	if len(ids) == 0 {
		return operators, nil
	}
	if err := c.DB.Find(&operators, ids).Error; err != nil {
		return nil, err
	}
	if len(operators) != len(ids) {
		return nil, errUnknownOperator
	}
	return operators, nil
}

type createDefaultTaskInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// CreateDefaultTask creates a task template owned by the calling admin
func (c *AdminController) CreateDefaultTask(ctx *fiber.Ctx) error {
	admin, _ := CurrentPrincipal(ctx)

	var input createDefaultTaskInput
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Title and adminId are required")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(ctx, "Title and adminId are required")
	}

	task := Models.DefaultTask{
		Title:       input.Title,
		Description: input.Description,
		AdminID:     admin.ID,
	}
	if err := c.DB.Create(&task).Error; err != nil {
		log.Println("Error creating default task:", err)
		return internalError(ctx, "Failed to create default task")
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// GetDefaultTasks lists the calling admin's templates, newest first
func (c *AdminController) GetDefaultTasks(ctx *fiber.Ctx) error {
	admin, _ := CurrentPrincipal(ctx)

	var tasks []Models.DefaultTask
	if err := c.DB.Where("admin_id = ?", admin.ID).
		Order("created_at desc").
		Find(&tasks).Error; err != nil {
		log.Println("Error fetching default tasks:", err)
		return internalError(ctx, "Failed to fetch default tasks")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// UpdateDefaultTask partially updates a template. A field left out of
// the body keeps its stored value.
func (c *AdminController) UpdateDefaultTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Task ID is required")
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Invalid request body")
	}
	if input.Title == nil && input.Description == nil {
		return validationError(ctx, "At least one of title or description must be provided")
	}

	var task Models.DefaultTask
	if err := c.DB.First(&task, id).Error; err != nil {
		return notFound(ctx, "Default task not found")
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if err := c.DB.Save(&task).Error; err != nil {
		log.Println("Error updating default task:", err)
		return internalError(ctx, "Failed to update default task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Default task updated successfully",
		"data":    task,
	})
}

// DeleteDefaultTask removes a template together with its daily
// instances. Instance operator links are cleared before the rows go.
func (c *AdminController) DeleteDefaultTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Task ID is required")
	}

	var task Models.DefaultTask
	if err := c.DB.First(&task, id).Error; err != nil {
		return notFound(ctx, "Default task not found")
	}

	var instances []Models.DailyTaskInstance
	if err := c.DB.Where("default_task_id = ?", task.ID).Find(&instances).Error; err != nil {
		log.Println("Error loading daily instances for delete:", err)
		return internalError(ctx, "Failed to delete default task")
	}
	for i := range instances {
		if err := c.DB.Model(&instances[i]).Association("Operators").Clear(); err != nil {
			log.Println("Error clearing instance operators:", err)
			return internalError(ctx, "Failed to delete default task")
		}
	}
	if len(instances) > 0 {
		if err := c.DB.Delete(&Models.DailyTaskInstance{}, "default_task_id = ?", task.ID).Error; err != nil {
			log.Println("Error deleting daily instances:", err)
			return internalError(ctx, "Failed to delete default task")
		}
	}
	if err := c.DB.Delete(&task).Error; err != nil {
		log.Println("Error deleting default task:", err)
		return internalError(ctx, "Failed to delete default task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Default task deleted successfully",
	})
}

type createNewTaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	OperatorIDs []uint     `json:"operatorIds" validate:"required,min=1"`
}

// CreateNewTask creates a one-off task and assigns the listed
// operators. Unknown priority/status values fall back to the defaults;
// only updates validate them strictly.
func (c *AdminController) CreateNewTask(ctx *fiber.Ctx) error {
	admin, _ := CurrentPrincipal(ctx)

	var input createNewTaskInput
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Title, adminId, and at least one operatorId are required")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(ctx, "Title, adminId, and at least one operatorId are required")
	}

	operators, err := c.loadOperators(input.OperatorIDs)
	if err != nil {
		if errors.Is(err, errUnknownOperator) {
			return validationError(ctx, "One or more operator ids do not exist")
		}
		log.Println("Error loading operators:", err)
		return internalError(ctx, "Failed to create new task")
	}

	task := Models.NewTask{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     Models.CoercePriority(input.Priority, Models.PriorityMedium),
		Status:       Models.CoerceStatus(input.Status, Models.StatusPending),
		AdminID:      admin.ID,
		AssignedDate: time.Now(),
		Operators:    operators,
	}
	if err := c.DB.Create(&task).Error; err != nil {
		log.Println("Error creating new task:", err)
		return internalError(ctx, "Failed to create new task")
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

type createDailyTaskInput struct {
	DefaultTaskID uint   `json:"defaultTaskId" validate:"required"`
	OperatorIDs   []uint `json:"operatorIds" validate:"required,min=1"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
}

// CreateDailyTask instantiates a template for today and assigns the
// listed operators
func (c *AdminController) CreateDailyTask(ctx *fiber.Ctx) error {
	var input createDailyTaskInput
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "defaultTaskId and at least one operatorId are required")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(ctx, "defaultTaskId and at least one operatorId are required")
	}

	var template Models.DefaultTask
	if err := c.DB.First(&template, input.DefaultTaskID).Error; err != nil {
		return notFound(ctx, "Default task not found")
	}

	operators, err := c.loadOperators(input.OperatorIDs)
	if err != nil {
		if errors.Is(err, errUnknownOperator) {
			return validationError(ctx, "One or more operator ids do not exist")
		}
		log.Println("Error loading operators:", err)
		return internalError(ctx, "Failed to create daily task instance")
	}

	instance := Models.DailyTaskInstance{
		TaskDate:      time.Now(),
		Priority:      Models.CoercePriority(input.Priority, Models.PriorityLow),
		Status:        Models.CoerceStatus(input.Status, Models.StatusPending),
		DefaultTaskID: template.ID,
		Operators:     operators,
	}
	if err := c.DB.Create(&instance).Error; err != nil {
		log.Println("Error creating daily task instance:", err)
		return internalError(ctx, "Failed to create daily task instance")
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Daily task instance created successfully",
		"data":    instance,
	})
}

// GetTodayDailyTasks lists today's instances derived from the calling
// admin's templates, earliest first
func (c *AdminController) GetTodayDailyTasks(ctx *fiber.Ctx) error {
	admin, _ := CurrentPrincipal(ctx)
	todayStart, tomorrowStart := AbstractFunctions.GetTodayWindow()

	var tasks []Models.DailyTaskInstance
	if err := c.DB.
		Joins("JOIN default_tasks ON default_tasks.id = daily_task_instances.default_task_id").
		Where("daily_task_instances.task_date >= ? AND daily_task_instances.task_date < ?", todayStart, tomorrowStart).
		Where("default_tasks.admin_id = ?", admin.ID).
		Preload("DefaultTask").
		Preload("Operators").
		Order("daily_task_instances.task_date asc").
		Find(&tasks).Error; err != nil {
		log.Println("Error fetching today's daily tasks:", err)
		return internalError(ctx, "Failed to fetch daily tasks")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// GetOperators lists every operator as {id,name}, sorted by name
func (c *AdminController) GetOperators(ctx *fiber.Ctx) error {
	var operators []OperatorSummary
	if err := c.DB.Model(&Models.OperationTeamMember{}).
		Select("id", "name").
		Order("name asc").
		Scan(&operators).Error; err != nil {
		log.Println("Error fetching operators:", err)
		return internalError(ctx, "Failed to fetch operators")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(operators),
		"data":    operators,
	})
}

// UpdateDailyTask changes an instance's priority and/or replaces its
// assignee set. An operatorIds array, when present, replaces the set
// outright — an empty array unassigns everyone.
func (c *AdminController) UpdateDailyTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Daily task ID is required")
	}

	var input struct {
		Priority    *string `json:"priority"`
		OperatorIDs *[]uint `json:"operatorIds"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Invalid request body")
	}

	var instance Models.DailyTaskInstance
	if err := c.DB.First(&instance, id).Error; err != nil {
		return notFound(ctx, "Daily task not found")
	}

	if input.Priority != nil {
		priority := Models.Priority(*input.Priority)
		if !priority.Valid() {
			return validationError(ctx, "Invalid priority value")
		}
		instance.Priority = priority
		if err := c.DB.Save(&instance).Error; err != nil {
			log.Println("Error updating daily task:", err)
			return internalError(ctx, "Failed to update daily task")
		}
	}

	if input.OperatorIDs != nil {
		operators, err := c.loadOperators(*input.OperatorIDs)
		if err != nil {
			if errors.Is(err, errUnknownOperator) {
				return validationError(ctx, "One or more operator ids do not exist")
			}
			log.Println("Error loading operators:", err)
			return internalError(ctx, "Failed to update daily task")
		}
		if err := c.DB.Model(&instance).Association("Operators").Replace(operators); err != nil {
			log.Println("Error replacing daily task operators:", err)
			return internalError(ctx, "Failed to update daily task")
		}
	}

	var updated Models.DailyTaskInstance
	if err := c.DB.Preload("DefaultTask").Preload("Operators").First(&updated, instance.ID).Error; err != nil {
		log.Println("Error reloading daily task:", err)
		return internalError(ctx, "Failed to update daily task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Daily task updated successfully",
		"data":    updated,
	})
}

// DeleteDailyTask removes a single instance, clearing its operator
// links first
func (c *AdminController) DeleteDailyTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Daily task ID is required")
	}

	var instance Models.DailyTaskInstance
	if err := c.DB.First(&instance, id).Error; err != nil {
		return notFound(ctx, "Daily task not found")
	}

	if err := c.DB.Model(&instance).Association("Operators").Clear(); err != nil {
		log.Println("Error clearing daily task operators:", err)
		return internalError(ctx, "Failed to delete daily task")
	}
	if err := c.DB.Delete(&instance).Error; err != nil {
		log.Println("Error deleting daily task:", err)
		return internalError(ctx, "Failed to delete daily task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Daily task deleted successfully",
	})
}

// GetNewTasks lists the calling admin's one-off tasks with assignee
// summaries, most recently assigned first
func (c *AdminController) GetNewTasks(ctx *fiber.Ctx) error {
	admin, _ := CurrentPrincipal(ctx)

	var tasks []Models.NewTask
	if err := c.DB.Where("admin_id = ?", admin.ID).
		Preload("Operators", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("assigned_date desc").
		Find(&tasks).Error; err != nil {
		log.Println("Error fetching new tasks:", err)
		return internalError(ctx, "Failed to fetch new tasks")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// UpdateNewTask partially updates a one-off task. Priority and status
// are validated strictly here, unlike at creation.
func (c *AdminController) UpdateNewTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Task ID is required")
	}

	var input struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"dueDate"`
		Priority    *string    `json:"priority"`
		Status      *string    `json:"status"`
		OperatorIDs *[]uint    `json:"operatorIds"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return validationError(ctx, "Invalid request body")
	}

	var task Models.NewTask
	if err := c.DB.First(&task, id).Error; err != nil {
		return notFound(ctx, "New task not found")
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		priority := Models.Priority(*input.Priority)
		if !priority.Valid() {
			return validationError(ctx, "Invalid priority value")
		}
		task.Priority = priority
	}
	if input.Status != nil {
		status := Models.TaskStatus(*input.Status)
		if !status.Valid() {
			return validationError(ctx, "Invalid status value")
		}
		task.Status = status
	}
	if err := c.DB.Save(&task).Error; err != nil {
		log.Println("Error updating new task:", err)
		return internalError(ctx, "Failed to update new task")
	}

	if input.OperatorIDs != nil {
		operators, err := c.loadOperators(*input.OperatorIDs)
		if err != nil {
			if errors.Is(err, errUnknownOperator) {
				return validationError(ctx, "One or more operator ids do not exist")
			}
			log.Println("Error loading operators:", err)
			return internalError(ctx, "Failed to update new task")
		}
		if err := c.DB.Model(&task).Association("Operators").Replace(operators); err != nil {
			log.Println("Error replacing new task operators:", err)
			return internalError(ctx, "Failed to update new task")
		}
	}

	var updated Models.NewTask
	if err := c.DB.Preload("Operators", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).First(&updated, task.ID).Error; err != nil {
		log.Println("Error reloading new task:", err)
		return internalError(ctx, "Failed to update new task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "New task updated successfully",
		"data":    updated,
	})
}

// DeleteNewTask unassigns all operators, then removes the task. The
// two steps are independent calls, not one transaction.
func (c *AdminController) DeleteNewTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return validationError(ctx, "Task ID is required in the URL")
	}

	var task Models.NewTask
	if err := c.DB.First(&task, id).Error; err != nil {
		return notFound(ctx, "New task not found")
	}

	if err := c.DB.Model(&task).Association("Operators").Clear(); err != nil {
		log.Println("Error clearing new task operators:", err)
		return internalError(ctx, "Failed to delete new task")
	}
	if err := c.DB.Delete(&task).Error; err != nil {
		log.Println("Error deleting new task:", err)
		return internalError(ctx, "Failed to delete new task")
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "New task deleted successfully and unassigned from all operators",
	})
}
