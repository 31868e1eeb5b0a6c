package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"OpsBoard/AbstractFunctions"
	"OpsBoard/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTemplate(t *testing.T, db *gorm.DB, adminID uint, title string) Models.DefaultTask {
	t.Helper()

	task := Models.DefaultTask{Title: title, Description: "desc", AdminID: adminID}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func createInstance(t *testing.T, db *gorm.DB, templateID uint, taskDate time.Time, status Models.TaskStatus, priority Models.Priority, operators ...Models.OperationTeamMember) Models.DailyTaskInstance {
	t.Helper()

	instance := Models.DailyTaskInstance{
		TaskDate:      taskDate,
		Priority:      priority,
		Status:        status,
		DefaultTaskID: templateID,
		Operators:     operators,
	}
	require.NoError(t, db.Create(&instance).Error)
	return instance
}

func TestCreateAndListDefaultTasks(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createDefault", token, fiber.Map{
		"title":       "Check inventory",
		"description": "All shelves stocked",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/admin/getDefaultTasks", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Check inventory", first["title"])
	assert.Equal(t, "All shelves stocked", first["description"])
}

func TestCreateDefaultTaskRequiresTitle(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createDefault", token, fiber.Map{
		"description": "no title here",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDefaultTasksScopedToOwner(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	other := createAdmin(t, db, "other@example.com")
	createTemplate(t, db, admin.ID, "mine")
	createTemplate(t, db, other.ID, "not mine")

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")
	resp := do(t, app, http.MethodGet, "/api/admin/getDefaultTasks", token, nil)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["count"])
}

func TestUpdateDefaultTaskPartial(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	task := createTemplate(t, db, admin.ID, "original")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	// title only: description must survive
	resp := do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateDefaultTask/%d", task.ID), token, fiber.Map{
		"title": "renamed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.DefaultTask
	require.NoError(t, db.First(&stored, task.ID).Error)
	assert.Equal(t, "renamed", stored.Title)
	assert.Equal(t, "desc", stored.Description)

	// empty body: rejected
	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateDefaultTask/%d", task.ID), token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown id
	resp = do(t, app, http.MethodPatch, "/api/admin/updateDefaultTask/99999", token, fiber.Map{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteDefaultTaskCascadesToInstances(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	task := createTemplate(t, db, admin.ID, "doomed")
	instance := createInstance(t, db, task.ID, time.Now(), Models.StatusPending, Models.PriorityLow, operator)

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")
	resp := do(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/deleteDefaultTask/%d", task.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.DefaultTask
	assert.Error(t, db.First(&stored, task.ID).Error)

	var storedInstance Models.DailyTaskInstance
	assert.Error(t, db.First(&storedInstance, instance.ID).Error)

	var joinRows int64
	require.NoError(t, db.Table("daily_task_operators").Count(&joinRows).Error)
	assert.Equal(t, int64(0), joinRows)

	// repeat delete: gone
	resp = do(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/deleteDefaultTask/%d", task.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateNewTaskRejectsEmptyOperators(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createNew", token, fiber.Map{
		"title":       "urgent",
		"operatorIds": []uint{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/admin/createNew", token, fiber.Map{
		"title": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateNewTaskCoercesEnums(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createNew", token, fiber.Map{
		"title":       "urgent",
		"priority":    "BOGUS",
		"status":      "WHATEVER",
		"operatorIds": []uint{operator.ID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var stored Models.NewTask
	require.NoError(t, db.Preload("Operators").First(&stored).Error)
	assert.Equal(t, Models.PriorityMedium, stored.Priority)
	assert.Equal(t, Models.StatusPending, stored.Status)
	require.Len(t, stored.Operators, 1)
	assert.Equal(t, operator.ID, stored.Operators[0].ID)
	assert.False(t, stored.AssignedDate.IsZero())
}

func TestUpdateNewTaskValidatesEnumsStrictly(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createNew", token, fiber.Map{
		"title":       "urgent",
		"operatorIds": []uint{operator.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task Models.NewTask
	require.NoError(t, db.First(&task).Error)

	// create-time coercion accepted BOGUS; update-time must reject it
	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateNewTask/%d", task.ID), token, fiber.Map{
		"priority": "BOGUS",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateNewTask/%d", task.ID), token, fiber.Map{
		"status": "DONE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateNewTask/%d", task.ID), token, fiber.Map{
		"priority": "HIGH",
		"status":   "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&task, task.ID).Error)
	assert.Equal(t, Models.PriorityHigh, task.Priority)
	assert.Equal(t, Models.StatusInProgress, task.Status)
}

func TestUpdateNewTaskReplacesAssignmentSet(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	first := createOperator(t, db, "First", "first@example.com")
	second := createOperator(t, db, "Second", "second@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createNew", token, fiber.Map{
		"title":       "handover",
		"operatorIds": []uint{first.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task Models.NewTask
	require.NoError(t, db.First(&task).Error)

	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateNewTask/%d", task.ID), token, fiber.Map{
		"operatorIds": []uint{second.ID},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.NewTask
	require.NoError(t, db.Preload("Operators").First(&stored, task.ID).Error)
	require.Len(t, stored.Operators, 1)
	assert.Equal(t, second.ID, stored.Operators[0].ID)

	// an explicit empty array unassigns everyone
	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateNewTask/%d", task.ID), token, fiber.Map{
		"operatorIds": []uint{},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.Preload("Operators").First(&stored, task.ID).Error)
	assert.Len(t, stored.Operators, 0)
}

func TestCreateDailyTaskDefaultsAndValidation(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	template := createTemplate(t, db, admin.ID, "rounds")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createDailyTask", token, fiber.Map{
		"defaultTaskId": template.ID,
		"operatorIds":   []uint{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/admin/createDailyTask", token, fiber.Map{
		"defaultTaskId": 99999,
		"operatorIds":   []uint{operator.ID},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/admin/createDailyTask", token, fiber.Map{
		"defaultTaskId": template.ID,
		"operatorIds":   []uint{operator.ID},
		"priority":      "nonsense",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var instance Models.DailyTaskInstance
	require.NoError(t, db.First(&instance).Error)
	assert.Equal(t, Models.PriorityLow, instance.Priority)
	assert.Equal(t, Models.StatusPending, instance.Status)
	assert.False(t, instance.TaskDate.IsZero())
}

func TestGetTodayDailyTasksScopedToAdminAndWindow(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	other := createAdmin(t, db, "other@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")

	mine := createTemplate(t, db, admin.ID, "mine")
	theirs := createTemplate(t, db, other.ID, "theirs")

	todayStart, _ := AbstractFunctions.GetTodayWindow()
	visible := createInstance(t, db, mine.ID, time.Now(), Models.StatusPending, Models.PriorityLow, operator)
	createInstance(t, db, mine.ID, todayStart.Add(-time.Hour), Models.StatusPending, Models.PriorityLow, operator)
	createInstance(t, db, theirs.ID, time.Now(), Models.StatusPending, Models.PriorityLow, operator)

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")
	resp := do(t, app, http.MethodGet, "/api/admin/getTodayDailyTasks", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(visible.ID), first["ID"])
	assert.NotNil(t, first["defaultTask"])
	assert.NotNil(t, first["operators"])
}

func TestUpdateDailyTaskPriorityAndAssignees(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	first := createOperator(t, db, "First", "first@example.com")
	second := createOperator(t, db, "Second", "second@example.com")
	template := createTemplate(t, db, admin.ID, "rounds")
	instance := createInstance(t, db, template.ID, time.Now(), Models.StatusPending, Models.PriorityLow, first)

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateDailyTask/%d", instance.ID), token, fiber.Map{
		"priority": "BOGUS",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/updateDailyTask/%d", instance.ID), token, fiber.Map{
		"priority":    "HIGH",
		"operatorIds": []uint{second.ID},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.DailyTaskInstance
	require.NoError(t, db.Preload("Operators").First(&stored, instance.ID).Error)
	assert.Equal(t, Models.PriorityHigh, stored.Priority)
	require.Len(t, stored.Operators, 1)
	assert.Equal(t, second.ID, stored.Operators[0].ID)
}

func TestDeleteNewTaskClearsAssignments(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	adminToken := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodPost, "/api/admin/createNew", adminToken, fiber.Map{
		"title":       "doomed",
		"operatorIds": []uint{operator.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task Models.NewTask
	require.NoError(t, db.First(&task).Error)

	resp = do(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/deleteNewTask/%d", task.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.NewTask
	assert.Error(t, db.First(&stored, task.ID).Error)

	var joinRows int64
	require.NoError(t, db.Table("new_task_operators").Count(&joinRows).Error)
	assert.Equal(t, int64(0), joinRows)

	// the former assignee no longer sees it
	opToken := login(t, app, "op@example.com", "operatorpass", "OPERATION")
	resp = do(t, app, http.MethodGet, "/api/operator/getnewTasks", opToken, nil)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["count"])
}

func TestGetOperatorsSortedByName(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	createOperator(t, db, "Zed", "zed@example.com")
	createOperator(t, db, "Amy", "amy@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodGet, "/api/admin/getOperators", token, nil)
	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Amy", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Zed", data[1].(map[string]interface{})["name"])
}

func TestAdminEndpointRejectsOperatorTokenWith403(t *testing.T) {
	app, db := setupApp(t)
	createOperator(t, db, "Op", "op@example.com")
	token := login(t, app, "op@example.com", "operatorpass", "OPERATION")

	resp := do(t, app, http.MethodGet, "/api/admin/getDefaultTasks", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminAggregateReports(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	operator := createOperator(t, db, "Op", "op@example.com")
	template := createTemplate(t, db, admin.ID, "rounds")

	createInstance(t, db, template.ID, time.Now(), Models.StatusCompleted, Models.PriorityHigh, operator)
	createInstance(t, db, template.ID, time.Now(), Models.StatusPending, Models.PriorityLow, operator)

	due := time.Now().Add(time.Hour)
	newTask := Models.NewTask{
		Title:        "delivery",
		DueDate:      &due,
		Priority:     Models.PriorityMedium,
		Status:       Models.StatusInProgress,
		AdminID:      admin.ID,
		AssignedDate: time.Now(),
		Operators:    []Models.OperationTeamMember{operator},
	}
	require.NoError(t, db.Create(&newTask).Error)

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodGet, "/api/admin/getTotalTasks", token, nil)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["dailyTasks"])
	assert.Equal(t, float64(1), data["newTasks"])
	assert.Equal(t, float64(3), data["total"])

	resp = do(t, app, http.MethodGet, "/api/admin/getDailyStatusCount", token, nil)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["PENDING"])
	assert.Equal(t, float64(1), data["IN_PROGRESS"])
	assert.Equal(t, float64(1), data["COMPLETED"])

	resp = do(t, app, http.MethodGet, "/api/admin/getPriorityCount", token, nil)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["LOW"])
	assert.Equal(t, float64(1), data["MEDIUM"])
	assert.Equal(t, float64(1), data["HIGH"])

	resp = do(t, app, http.MethodGet, "/api/admin/getTodayTaskCompletion", token, nil)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["completed"])
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, 0.33, data["completionRate"])
}

func TestAssigneeWorkload(t *testing.T) {
	app, db := setupApp(t)
	admin := createAdmin(t, db, "admin@example.com")
	busy := createOperator(t, db, "Busy", "busy@example.com")
	idle := createOperator(t, db, "Idle", "idle@example.com")
	template := createTemplate(t, db, admin.ID, "rounds")

	createInstance(t, db, template.ID, time.Now(), Models.StatusPending, Models.PriorityLow, busy)
	createInstance(t, db, template.ID, time.Now(), Models.StatusCompleted, Models.PriorityHigh, busy)

	newTask := Models.NewTask{
		Title:        "delivery",
		Priority:     Models.PriorityMedium,
		Status:       Models.StatusInProgress,
		AdminID:      admin.ID,
		AssignedDate: time.Now(),
		Operators:    []Models.OperationTeamMember{busy},
	}
	require.NoError(t, db.Create(&newTask).Error)

	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")
	resp := do(t, app, http.MethodGet, "/api/admin/getAssigneeWorkload", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(busy.ID), first["operatorId"])
	assert.Equal(t, float64(1), first["pending"])
	assert.Equal(t, float64(1), first["inProgress"])
	assert.Equal(t, float64(1), first["completed"])
	assert.Equal(t, float64(3), first["total"])

	second := data[1].(map[string]interface{})
	assert.Equal(t, float64(idle.ID), second["operatorId"])
	assert.Equal(t, float64(0), second["total"])
}

func TestExportAssigneeWorkload(t *testing.T) {
	app, db := setupApp(t)
	createAdmin(t, db, "admin@example.com")
	createOperator(t, db, "Op", "op@example.com")
	token := login(t, app, "admin@example.com", "adminpass", "ADMIN")

	resp := do(t, app, http.MethodGet, "/api/admin/exportAssigneeWorkload", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "workload_export_")
}
