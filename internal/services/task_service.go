package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/repository"
	"github.com/yukikurage/join-board-api/internal/utils"
	"github.com/yukikurage/join-board-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrInvalidStatus   = errors.New("invalid status")
)

// TaskOrderingFields are the columns a task list may be ordered by.
var TaskOrderingFields = []string{
	"id", "title", "description", "due_date", "priority", "category", "status", "order", "created_at", "updated_at",
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	contactRepo repository.ContactRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, contactRepo repository.ContactRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		contactRepo: contactRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Search   string
	Ordering string
	Status   *string
	Priority *string
	Category *string
}

// SubtaskInput is one entry of a nested subtask list
type SubtaskInput struct {
	Title     string
	Completed bool
	Order     int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.TaskPriority
	Category    string
	Status      models.TaskStatus
	Order       *int
	AssignedTo  []uint64
	Subtasks    []SubtaskInput
}

// UpdateTaskInput lists the fields an update changes. Nil fields and unset collections are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Category    *string
	Status      *models.TaskStatus
	Order       *int
	OrderSet    bool

	AssignedTo    []uint64
	AssignedToSet bool
	Subtasks      []SubtaskInput
	SubtasksSet   bool
}

// ListTasks returns the tasks matching the filters
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Search:   input.Search,
		Ordering: utils.ParseOrdering(input.Ordering, TaskOrderingFields),
		Category: input.Category,
	}
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		filter.Status = &status
	}
	if input.Priority != nil {
		priority := models.TaskPriority(*input.Priority)
		filter.Priority = &priority
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task with its subtasks and assignments
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a task, its assignments and its subtasks
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate.UTC(),
		Priority:    input.Priority,
		Category:    strings.TrimSpace(input.Category),
		Status:      input.Status,
		Order:       input.Order,
		Subtasks:    toSubtasks(input.Subtasks),
	}

	verr := validateTask(task)
	if task.DueDate.IsZero() {
		verr.Add("due_date", validation.MsgFieldRequired, nil)
	}
	validateSubtasks(verr, input.Subtasks)
	if err := s.checkContacts(ctx, verr, input.AssignedTo); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task, input.AssignedTo); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateTask applies the given fields. A subtask list replaces every existing subtask.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate.UTC()
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = strings.TrimSpace(*input.Category)
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.OrderSet {
		task.Order = input.Order
	}

	verr := validateTask(task)
	if input.SubtasksSet {
		validateSubtasks(verr, input.Subtasks)
	}
	if input.AssignedToSet {
		if err := s.checkContacts(ctx, verr, input.AssignedTo); err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	changes := repository.TaskChanges{
		ReplaceContacts: input.AssignedToSet,
		ContactIDs:      input.AssignedTo,
		ReplaceSubtasks: input.SubtasksSet,
		Subtasks:        toSubtasks(input.Subtasks),
	}
	if err := s.taskRepo.Update(ctx, task, changes); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// DeleteTask deletes a task together with its subtasks
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// UpdateStatus moves a task to another board column
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uint64, status string) (*models.Task, error) {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	newStatus := models.TaskStatus(status)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.GetTask(ctx, taskID)
}

// ToggleSubtask flips the completed flag of one of the task's subtasks and returns the whole task
func (s *TaskService) ToggleSubtask(ctx context.Context, taskID, subtaskID uint64) (*models.Task, error) {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.ToggleSubtask(ctx, taskID, subtaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("failed to toggle subtask: %w", err)
	}

	return s.GetTask(ctx, taskID)
}

// checkContacts reports the first assigned id without a contact.
func (s *TaskService) checkContacts(ctx context.Context, verr *validation.Error, contactIDs []uint64) error {
	if len(contactIDs) == 0 {
		return nil
	}

	existing, err := s.contactRepo.ExistingIDs(ctx, contactIDs)
	if err != nil {
		return fmt.Errorf("failed to verify contacts: %w", err)
	}

	found := make(map[uint64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	for _, id := range contactIDs {
		if _, ok := found[id]; !ok {
			verr.Add("assigned_to", validation.MsgFieldInvalidPK, map[string]interface{}{"Value": id})
			return nil
		}
	}
	return nil
}

func validateTask(task *models.Task) *validation.Error {
	verr := validation.New()
	if task.Title == "" {
		verr.Add("title", validation.MsgFieldBlank, nil)
	}
	if task.Category == "" {
		verr.Add("category", validation.MsgFieldBlank, nil)
	}
	if !task.Priority.Valid() {
		verr.Add("priority", validation.MsgFieldInvalidChoice, map[string]interface{}{"Value": string(task.Priority)})
	}
	if !task.Status.Valid() {
		verr.Add("status", validation.MsgFieldInvalidChoice, map[string]interface{}{"Value": string(task.Status)})
	}
	return verr
}

func validateSubtasks(verr *validation.Error, subtasks []SubtaskInput) {
	for i, subtask := range subtasks {
		if strings.TrimSpace(subtask.Title) == "" {
			verr.Add(fmt.Sprintf("subtasks.%d.title", i), validation.MsgFieldBlank, nil)
		}
	}
}

func toSubtasks(inputs []SubtaskInput) []models.Subtask {
	subtasks := make([]models.Subtask, len(inputs))
	for i, input := range inputs {
		subtasks[i] = models.Subtask{
			Title:     strings.TrimSpace(input.Title),
			Completed: input.Completed,
			Order:     input.Order,
		}
	}
	return subtasks
}
