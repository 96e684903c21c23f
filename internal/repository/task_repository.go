package repository

import (
	"context"

	"github.com/yukikurage/join-board-api/internal/database"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var taskSearchColumns = []string{"title", "description", "category"}

var defaultTaskOrdering = []utils.OrderField{
	{Column: "order"},
	{Column: "created_at", Desc: true},
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// orderedSubtasks preloads subtasks by position, then identity.
func orderedSubtasks(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).Order("id")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Subtasks", orderedSubtasks).Preload("Assignments")
}

// Create creates the task row, then its assignments, then its subtasks in the given order.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task, contactIDs []uint64) error {
	subtasks := task.Subtasks
	task.Subtasks = nil
	task.Assignments = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if err := createAssignments(tx, task.ID, contactIDs); err != nil {
			return err
		}
		return createSubtasks(tx, task.ID, subtasks)
	})
	if err != nil {
		task.Subtasks = subtasks
		return err
	}

	task.Subtasks = subtasks
	task.Assignments = assignmentsFor(task.ID, contactIDs)
	return nil
}

// FindByID finds a task with subtasks and assignments loaded
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(withRelations).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with search, filters and ordering
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	tasks := []models.Task{}
	err := query.
		Scopes(
			database.Search(filter.Search, taskSearchColumns...),
			database.Ordering(filter.Ordering, defaultTaskOrdering...),
			withRelations,
		).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update saves the scalar fields and replaces whichever collections changes names.
// Replacing subtasks deletes the old rows, so their identities are not kept.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task, changes TaskChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Select("*").Omit(clause.Associations, "id", "created_at").Updates(task).Error; err != nil {
			return err
		}

		if changes.ReplaceContacts {
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := createAssignments(tx, task.ID, changes.ContactIDs); err != nil {
				return err
			}
		}

		if changes.ReplaceSubtasks {
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.Subtask{}).Error; err != nil {
				return err
			}
			if err := createSubtasks(tx, task.ID, changes.Subtasks); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the subtasks, then the assignments, then the task itself.
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateStatus sets the status of a task. Callers check existence first.
func (r *GormTaskRepository) UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
}

// ToggleSubtask flips the flag in a single statement, so two concurrent toggles never collapse into one.
func (r *GormTaskRepository) ToggleSubtask(ctx context.Context, taskID, subtaskID uint64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subtask{}).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Update("completed", gorm.Expr("NOT completed"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func assignmentsFor(taskID uint64, contactIDs []uint64) []models.TaskAssignment {
	assignments := make([]models.TaskAssignment, 0, len(contactIDs))
	seen := make(map[uint64]struct{}, len(contactIDs))
	for _, contactID := range contactIDs {
		if _, ok := seen[contactID]; ok {
			continue
		}
		seen[contactID] = struct{}{}
		assignments = append(assignments, models.TaskAssignment{
			TaskID:    taskID,
			ContactID: contactID,
		})
	}
	return assignments
}

func createAssignments(tx *gorm.DB, taskID uint64, contactIDs []uint64) error {
	assignments := assignmentsFor(taskID, contactIDs)
	if len(assignments) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&assignments).Error
}

// createSubtasks inserts the subtasks one by one so identities follow payload order.
func createSubtasks(tx *gorm.DB, taskID uint64, subtasks []models.Subtask) error {
	for i := range subtasks {
		subtasks[i].ID = 0
		subtasks[i].TaskID = taskID
		if err := tx.Omit(clause.Associations).Create(&subtasks[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
