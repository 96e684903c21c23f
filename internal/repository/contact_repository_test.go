package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/testutil"
	"github.com/yukikurage/join-board-api/internal/utils"
	"gorm.io/gorm"
)

func TestContactRepository_CreateDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Contact{Email: "a@example.com", Firstname: "A", Phone: "1"}))
	err := repo.Create(ctx, &models.Contact{Email: "a@example.com", Firstname: "B", Phone: "2"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestContactRepository_ListSearchFilterOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	for _, c := range []models.Contact{
		{Email: "zoe@example.com", Firstname: "Zoe", Lastname: "Adams", Phone: "555-0100"},
		{Email: "anna@example.com", Firstname: "Anna", Lastname: "Smith", Phone: "555-0199"},
		{Email: "anna.b@example.com", Firstname: "Anna", Lastname: "Baker", Phone: "777"},
	} {
		contact := c
		require.NoError(t, repo.Create(ctx, &contact))
	}

	contacts, err := repo.List(ctx, ContactFilter{})
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Baker", contacts[0].Lastname)
	assert.Equal(t, "Smith", contacts[1].Lastname)
	assert.Equal(t, "Zoe", contacts[2].Firstname)

	contacts, err = repo.List(ctx, ContactFilter{Search: "SMITH"})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "anna@example.com", contacts[0].Email)

	contacts, err = repo.List(ctx, ContactFilter{Search: "555"})
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	firstname := "Anna"
	contacts, err = repo.List(ctx, ContactFilter{Firstname: &firstname, Ordering: []utils.OrderField{{Column: "email", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "anna@example.com", contacts[0].Email)
}

func TestContactRepository_ListDefaultOrderIsByName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zoe", "Mia", "Al"} {
		createNamedContact(t, repo, name)
	}

	contacts, err := repo.List(ctx, ContactFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Al", "Mia", "Zoe"}, firstnames(contacts))

	contacts, err = repo.List(ctx, ContactFilter{Ordering: []utils.OrderField{{Column: "firstname", Desc: true}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zoe", "Mia", "Al"}, firstnames(contacts))
}

func TestContactRepository_SearchNonASCII(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	createNamedContact(t, repo, "Özil")
	createNamedContact(t, repo, "Ozzy")

	contacts, err := repo.List(ctx, ContactFilter{Search: "Özil"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Özil"}, firstnames(contacts))

	contacts, err = repo.List(ctx, ContactFilter{Search: "ZIL"})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
}

func createNamedContact(t *testing.T, repo ContactRepository, firstname string) {
	t.Helper()
	contact := &models.Contact{Email: strings.ToLower(firstname) + "@example.com", Firstname: firstname, Phone: "1"}
	require.NoError(t, repo.Create(context.Background(), contact))
}

func firstnames(contacts []models.Contact) []string {
	names := make([]string, len(contacts))
	for i, contact := range contacts {
		names[i] = contact.Firstname
	}
	return names
}

func TestContactRepository_DeleteUnlinksTasks(t *testing.T) {
	db := testutil.NewDB(t)
	contacts := NewContactRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	alice := createContact(t, db, "alice@example.com")
	bob := createContact(t, db, "bob@example.com")
	task := newTask("Shared")
	require.NoError(t, tasks.Create(ctx, task, []uint64{alice.ID, bob.ID}))

	require.NoError(t, contacts.Delete(ctx, alice.ID))

	found, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{bob.ID}, found.AssignedContactIDs())

	assert.ErrorIs(t, contacts.Delete(ctx, alice.ID), gorm.ErrRecordNotFound)
}

func TestContactRepository_ExistingIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createContact(t, db, "alice@example.com")

	ids, err := repo.ExistingIDs(ctx, []uint64{alice.ID, alice.ID + 10})
	require.NoError(t, err)
	assert.Equal(t, []uint64{alice.ID}, ids)

	ids, err = repo.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestContactRepository_FirstOrCreateByEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	first := &models.Contact{Email: "x@example.com", Firstname: "X"}
	created, err := repo.FirstOrCreateByEmail(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := &models.Contact{Email: "x@example.com", Firstname: "Other"}
	created, err = repo.FirstOrCreateByEmail(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "X", second.Firstname)
}
