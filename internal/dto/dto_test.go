package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/join-board-api/internal/models"
)

func TestToTaskDTO_StringIdentities(t *testing.T) {
	order := 2
	task := models.Task{
		ID:       12,
		Title:    "T1",
		DueDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority: models.TaskPriorityLow,
		Category: "c",
		Status:   models.TaskStatusDone,
		Order:    &order,
		Subtasks: []models.Subtask{{ID: 5, Title: "s1", Order: 0}},
		Assignments: []models.TaskAssignment{
			{TaskID: 12, ContactID: 9},
			{TaskID: 12, ContactID: 3},
		},
	}

	body, err := json.Marshal(ToTaskDTO(task))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "12", decoded["id"])
	assert.Equal(t, []interface{}{"3", "9"}, decoded["assigned_to"])
	assert.Equal(t, "2025-01-01T00:00:00Z", decoded["due_date"])
	assert.Equal(t, float64(2), decoded["order"])

	subtasks := decoded["subtasks"].([]interface{})
	require.Len(t, subtasks, 1)
	assert.Equal(t, "5", subtasks[0].(map[string]interface{})["id"])
}

func TestToTaskDTO_EmptyCollectionsAreArrays(t *testing.T) {
	body, err := json.Marshal(ToTaskDTO(models.Task{ID: 1}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, []interface{}{}, decoded["assigned_to"])
	assert.Equal(t, []interface{}{}, decoded["subtasks"])
	assert.Nil(t, decoded["order"])
}

func TestToUserDTO_MirrorsDateJoined(t *testing.T) {
	joined := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	user := ToUserDTO(models.User{ID: 4, Email: "a@b.c", DateJoined: joined, PasswordHash: "secret"})

	assert.Equal(t, "4", user.ID)
	assert.Equal(t, joined, user.CreatedAt)
	assert.Equal(t, joined, user.DateJoined)

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.Contains(t, string(body), `"createdAt"`)
}
