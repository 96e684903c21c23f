package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/repository"
	"github.com/yukikurage/join-board-api/internal/testutil"
	"github.com/yukikurage/join-board-api/internal/validation"
)

func newContactService(t *testing.T) *ContactService {
	t.Helper()
	return NewContactService(repository.NewContactRepository(testutil.NewDB(t)))
}

func stringPtr(v string) *string {
	return &v
}

func TestContactService_CreateRejectsDuplicateEmail(t *testing.T) {
	service := newContactService(t)
	ctx := context.Background()

	_, err := service.CreateContact(ctx, ContactFields{Email: "dup@example.com", Firstname: "A", Phone: "1"})
	require.NoError(t, err)

	_, err = service.CreateContact(ctx, ContactFields{Email: "dup@example.com", Firstname: "B", Phone: "2"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgContactEmailTaken, verr.Fields["email"][0].ID)
}

func TestContactService_CreateValidatesRequiredFields(t *testing.T) {
	service := newContactService(t)

	_, err := service.CreateContact(context.Background(), ContactFields{Email: "nope"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgFieldInvalidEmail, verr.Fields["email"][0].ID)
	assert.True(t, verr.Has("firstname"))
	assert.True(t, verr.Has("phone"))
	assert.False(t, verr.Has("lastname"))
}

func TestContactService_UpdateKeepsOwnEmail(t *testing.T) {
	service := newContactService(t)
	ctx := context.Background()

	contact, err := service.CreateContact(ctx, ContactFields{Email: "me@example.com", Firstname: "Me", Phone: "1"})
	require.NoError(t, err)
	_, err = service.CreateContact(ctx, ContactFields{Email: "other@example.com", Firstname: "O", Phone: "2"})
	require.NoError(t, err)

	updated, err := service.UpdateContact(ctx, contact.ID, ContactPatch{Email: stringPtr("me@example.com"), Lastname: stringPtr("Moe")})
	require.NoError(t, err)
	assert.Equal(t, "Moe", updated.Lastname)
	assert.Equal(t, "Me", updated.Firstname)

	_, err = service.UpdateContact(ctx, contact.ID, ContactPatch{Email: stringPtr("other@example.com")})
	_, ok := validation.As(err)
	assert.True(t, ok)

	_, err = service.UpdateContact(ctx, contact.ID+10, ContactPatch{})
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_DeleteContact(t *testing.T) {
	service := newContactService(t)
	ctx := context.Background()

	contact, err := service.CreateContact(ctx, ContactFields{Email: "gone@example.com", Firstname: "G", Phone: "1"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteContact(ctx, contact.ID))
	assert.ErrorIs(t, service.DeleteContact(ctx, contact.ID), ErrContactNotFound)
}

func TestContactService_EnsureContactForUser(t *testing.T) {
	service := newContactService(t)
	ctx := context.Background()

	contact, err := service.EnsureContactForUser(ctx, &models.User{Email: "john@example.com", Name: "John Ronald Doe"})
	require.NoError(t, err)
	assert.Equal(t, "John", contact.Firstname)
	assert.Equal(t, "Ronald Doe", contact.Lastname)
	assert.Empty(t, contact.Phone)

	again, err := service.EnsureContactForUser(ctx, &models.User{Email: "john@example.com", Name: "Somebody Else"})
	require.NoError(t, err)
	assert.Equal(t, contact.ID, again.ID)
	assert.Equal(t, "John", again.Firstname)

	blank, err := service.EnsureContactForUser(ctx, &models.User{Email: "jane.doe@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", blank.Firstname)
	assert.Empty(t, blank.Lastname)

	// a phone-less mirrored contact can still be patched without sending a phone
	_, err = service.UpdateContact(ctx, blank.ID, ContactPatch{Lastname: stringPtr("Doe")})
	assert.NoError(t, err)
}

func TestContactService_ListOrdering(t *testing.T) {
	service := newContactService(t)
	ctx := context.Background()

	for _, fields := range []ContactFields{
		{Email: "b@example.com", Firstname: "Bea", Phone: "1"},
		{Email: "a@example.com", Firstname: "Al", Phone: "2"},
	} {
		_, err := service.CreateContact(ctx, fields)
		require.NoError(t, err)
	}

	contacts, err := service.ListContacts(ctx, ListContactsInput{})
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Al", contacts[0].Firstname)

	contacts, err = service.ListContacts(ctx, ListContactsInput{Ordering: "-firstname,unknown"})
	require.NoError(t, err)
	assert.Equal(t, "Bea", contacts[0].Firstname)
}
