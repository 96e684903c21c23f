package repository

import (
	"context"

	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// CreateWithToken creates a user and its auth token within a single transaction.
	// token.UserID is filled in from the created user.
	CreateWithToken(ctx context.Context, user *models.User, token *models.AuthToken) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UsernameExists reports whether the username is already taken
	UsernameExists(ctx context.Context, username string) (bool, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
}

// TokenRepository defines the interface for auth token data access
type TokenRepository interface {
	// FindByKey finds a token by key, with its user loaded
	FindByKey(ctx context.Context, key string) (*models.AuthToken, error)

	// FindByUserID finds the token of a user
	FindByUserID(ctx context.Context, userID uint64) (*models.AuthToken, error)

	// Create stores a new token
	Create(ctx context.Context, token *models.AuthToken) error

	// DeleteByUserID removes the token of a user and returns the deleted keys
	DeleteByUserID(ctx context.Context, userID uint64) ([]string, error)
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	// Create creates a new contact
	Create(ctx context.Context, contact *models.Contact) error

	// FindByID finds a contact by ID
	FindByID(ctx context.Context, id uint64) (*models.Contact, error)

	// FindByEmail finds a contact by email
	FindByEmail(ctx context.Context, email string) (*models.Contact, error)

	// Update saves all fields of a contact
	Update(ctx context.Context, contact *models.Contact) error

	// Delete removes a contact and its task assignments
	Delete(ctx context.Context, id uint64) error

	// List retrieves contacts with search, filters and ordering
	List(ctx context.Context, filter ContactFilter) ([]models.Contact, error)

	// ExistingIDs returns which of the given IDs exist
	ExistingIDs(ctx context.Context, ids []uint64) ([]uint64, error)

	// FirstOrCreateByEmail loads the contact with contact.Email, or creates it from contact.
	// The returned bool is true when a new row was inserted.
	FirstOrCreateByEmail(ctx context.Context, contact *models.Contact) (bool, error)
}

// ContactFilter holds filtering options for listing contacts
type ContactFilter struct {
	Search    string
	Ordering  []utils.OrderField
	Email     *string
	Firstname *string
	Lastname  *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task with its subtasks and assignments in one transaction
	Create(ctx context.Context, task *models.Task, contactIDs []uint64) error

	// FindByID finds a task with subtasks and assignments loaded
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with search, filters and ordering
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves the scalar fields and applies the collection changes in one transaction
	Update(ctx context.Context, task *models.Task, changes TaskChanges) error

	// Delete removes a task, its subtasks and its assignments
	Delete(ctx context.Context, id uint64) error

	// UpdateStatus sets the status of a task
	UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus) error

	// ToggleSubtask flips the completed flag of a subtask belonging to the task
	ToggleSubtask(ctx context.Context, taskID, subtaskID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Search   string
	Ordering []utils.OrderField
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Category *string
}

// TaskChanges lists the collections an update replaces.
// A collection is only touched when its Replace flag is set; an empty list then clears it.
type TaskChanges struct {
	ReplaceContacts bool
	ContactIDs      []uint64
	ReplaceSubtasks bool
	Subtasks        []models.Subtask
}
