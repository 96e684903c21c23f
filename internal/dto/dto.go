package dto

import (
	"strconv"
	"time"

	"github.com/yukikurage/join-board-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthResponse is returned by register, login and guest login
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ContactDTO represents a contact in API responses
type ContactDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubtaskDTO represents a subtask nested in a task
type SubtaskDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     time.Time           `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Category    string              `json:"category"`
	Status      models.TaskStatus   `json:"status"`
	AssignedTo  []string            `json:"assigned_to"`
	Subtasks    []SubtaskDTO        `json:"subtasks"`
	Order       *int                `json:"order"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Conversion functions

// FormatID renders a numeric identity the way clients expect it
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         FormatID(user.ID),
		Email:      user.Email,
		Name:       user.Name,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		DateJoined: user.DateJoined.UTC(),
		CreatedAt:  user.DateJoined.UTC(),
	}
}

// ToAuthResponse converts a user and its token to AuthResponse
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		User:  ToUserDTO(user),
		Token: token,
	}
}

// ToContactDTO converts a Contact model to ContactDTO
func ToContactDTO(contact models.Contact) ContactDTO {
	return ContactDTO{
		ID:        FormatID(contact.ID),
		Email:     contact.Email,
		Firstname: contact.Firstname,
		Lastname:  contact.Lastname,
		Phone:     contact.Phone,
		CreatedAt: contact.CreatedAt.UTC(),
		UpdatedAt: contact.UpdatedAt.UTC(),
	}
}

// ToContactDTOs converts a slice of contacts
func ToContactDTOs(contacts []models.Contact) []ContactDTO {
	dtos := make([]ContactDTO, len(contacts))
	for i, contact := range contacts {
		dtos[i] = ToContactDTO(contact)
	}
	return dtos
}

// ToTaskDTO converts a Task model with loaded relations to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	contactIDs := task.AssignedContactIDs()
	assignedTo := make([]string, len(contactIDs))
	for i, id := range contactIDs {
		assignedTo[i] = FormatID(id)
	}

	subtasks := make([]SubtaskDTO, len(task.Subtasks))
	for i, subtask := range task.Subtasks {
		subtasks[i] = SubtaskDTO{
			ID:        FormatID(subtask.ID),
			Title:     subtask.Title,
			Completed: subtask.Completed,
			Order:     subtask.Order,
		}
	}

	return TaskDTO{
		ID:          FormatID(task.ID),
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.UTC(),
		Priority:    task.Priority,
		Category:    task.Category,
		Status:      task.Status,
		AssignedTo:  assignedTo,
		Subtasks:    subtasks,
		Order:       task.Order,
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
