package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/dto"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/middleware"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/services"
	"github.com/yukikurage/join-board-api/internal/validation"
)

var (
	priorityChoices = stringChoices(models.TaskPriorities)
	statusChoices   = stringChoices(models.TaskStatuses)
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks
// Can filter by status, priority and category
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Status:   queryFilter(c, "status"),
		Priority: queryFilter(c, "priority"),
		Category: queryFilter(c, "category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task with its assignments and subtasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	input, err := readTask(validation.NewReader(payload, false))
	if err != nil {
		respondError(c, err)
		return
	}

	create := services.CreateTaskInput{
		Title:       deref(input.Title),
		Description: deref(input.Description),
		Category:    deref(input.Category),
		Order:       input.Order,
		AssignedTo:  input.AssignedTo,
		Subtasks:    input.Subtasks,
	}
	if input.DueDate != nil {
		create.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		create.Priority = *input.Priority
	}
	if input.Status != nil {
		create.Status = *input.Status
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), create)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the task fields (PUT)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdateTask changes only the sent fields (PATCH)
func (h *TaskHandler) PartialUpdateTask(c *gin.Context) {
	h.update(c, true)
}

func (h *TaskHandler) update(c *gin.Context, partial bool) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	payload, ok := readPayload(c)
	if !ok {
		return
	}

	if _, err := h.taskService.GetTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err)
		return
	}

	input, err := readTask(validation.NewReader(payload, partial))
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its subtasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus moves the task to another board column
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	payload, ok := readPayload(c)
	if !ok {
		return
	}

	// a missing or non-string status is just another invalid status
	var status string
	_ = json.Unmarshal(payload["status"], &status)

	task, err := h.taskService.UpdateStatus(c.Request.Context(), taskID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ToggleSubtask flips the completed flag of one subtask
func (h *TaskHandler) ToggleSubtask(c *gin.Context) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	payload, ok := readPayload(c)
	if !ok {
		return
	}

	// an unusable id matches no subtask
	subtaskID, _ := validation.ParseIDValue(payload["subtask_id"])

	task, err := h.taskService.ToggleSubtask(c.Request.Context(), taskID, subtaskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// readTask reads the writable task fields. Absent fields stay unset.
func readTask(r *validation.Reader) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if title, ok := r.String("title", true, validation.StringRule{MaxLength: constants.MaxTitleLength}); ok {
		input.Title = &title
	}
	if description, ok := r.String("description", false, validation.StringRule{AllowBlank: true}); ok {
		input.Description = &description
	}
	if dueDate, ok := r.DateTime("due_date", true); ok {
		input.DueDate = &dueDate
	}
	if priority, ok := r.Choice("priority", false, priorityChoices); ok {
		value := models.TaskPriority(priority)
		input.Priority = &value
	}
	if category, ok := r.String("category", true, validation.StringRule{MaxLength: constants.MaxCategoryLength}); ok {
		input.Category = &category
	}
	if status, ok := r.Choice("status", false, statusChoices); ok {
		value := models.TaskStatus(status)
		input.Status = &value
	}
	input.Order, input.OrderSet = r.NullableInt("order")
	input.AssignedTo, input.AssignedToSet = r.IDList("assigned_to", false)

	if readers, ok := r.Objects("subtasks", false); ok {
		input.Subtasks = make([]services.SubtaskInput, 0, len(readers))
		for _, sr := range readers {
			input.Subtasks = append(input.Subtasks, readSubtask(sr))
		}
		input.SubtasksSet = true
	}

	return input, r.Err()
}

func readSubtask(r *validation.Reader) services.SubtaskInput {
	title, _ := r.String("title", true, validation.StringRule{MaxLength: constants.MaxTitleLength})
	completed, _ := r.Bool("completed", false)
	order, _ := r.Int("order", false)

	return services.SubtaskInput{
		Title:     title,
		Completed: completed,
		Order:     order,
	}
}
