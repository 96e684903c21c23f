package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/repository"
	"github.com/yukikurage/join-board-api/internal/utils"
	"github.com/yukikurage/join-board-api/internal/validation"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactOrderingFields are the columns a contact list may be ordered by.
var ContactOrderingFields = []string{"id", "email", "firstname", "lastname", "phone", "created_at", "updated_at"}

// ContactService handles contact business logic
type ContactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// ListContactsInput represents filters for listing contacts
type ListContactsInput struct {
	Search    string
	Ordering  string
	Email     *string
	Firstname *string
	Lastname  *string
}

// ContactFields holds every writable contact field.
type ContactFields struct {
	Email     string
	Firstname string
	Lastname  string
	Phone     string
}

// ContactPatch lists the fields an update changes. Nil fields are left untouched.
type ContactPatch struct {
	Email     *string
	Firstname *string
	Lastname  *string
	Phone     *string
}

// ListContacts returns the contacts matching the filters
func (s *ContactService) ListContacts(ctx context.Context, input ListContactsInput) ([]models.Contact, error) {
	contacts, err := s.contactRepo.List(ctx, repository.ContactFilter{
		Search:    input.Search,
		Ordering:  utils.ParseOrdering(input.Ordering, ContactOrderingFields),
		Email:     input.Email,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// GetContact returns a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uint64) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	return contact, nil
}

// CreateContact creates a contact with a unique email
func (s *ContactService) CreateContact(ctx context.Context, fields ContactFields) (*models.Contact, error) {
	contact := &models.Contact{
		Email:     strings.TrimSpace(fields.Email),
		Firstname: strings.TrimSpace(fields.Firstname),
		Lastname:  strings.TrimSpace(fields.Lastname),
		Phone:     strings.TrimSpace(fields.Phone),
	}

	if err := s.validate(ctx, contact, allContactFields); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// UpdateContact applies a patch to an existing contact
func (s *ContactService) UpdateContact(ctx context.Context, id uint64, patch ContactPatch) (*models.Contact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		contact.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Firstname != nil {
		contact.Firstname = strings.TrimSpace(*patch.Firstname)
	}
	if patch.Lastname != nil {
		contact.Lastname = strings.TrimSpace(*patch.Lastname)
	}
	if patch.Phone != nil {
		contact.Phone = strings.TrimSpace(*patch.Phone)
	}

	touched := contactFieldSet{
		email:     patch.Email != nil,
		firstname: patch.Firstname != nil,
		phone:     patch.Phone != nil,
	}
	if err := s.validate(ctx, contact, touched); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

// DeleteContact removes a contact and unassigns it from every task
func (s *ContactService) DeleteContact(ctx context.Context, id uint64) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// EnsureContactForUser creates the address book entry of a user unless one with the same email exists.
// The display name is split on its first space; a blank name falls back to the email's local part.
func (s *ContactService) EnsureContactForUser(ctx context.Context, user *models.User) (*models.Contact, error) {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if name == "" {
		name, _, _ = strings.Cut(user.Email, "@")
	}
	firstname, lastname, _ := strings.Cut(name, " ")

	contact := &models.Contact{
		Email:     user.Email,
		Firstname: truncate(firstname, constants.MaxContactNameLength),
		Lastname:  truncate(strings.TrimSpace(lastname), constants.MaxContactNameLength),
	}

	if _, err := s.contactRepo.FirstOrCreateByEmail(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to ensure contact: %w", err)
	}
	return contact, nil
}

// contactFieldSet marks the fields a write has to validate.
type contactFieldSet struct {
	email     bool
	firstname bool
	phone     bool
}

var allContactFields = contactFieldSet{email: true, firstname: true, phone: true}

// validate checks only the touched fields. Contacts mirrored from users are stored without a phone.
func (s *ContactService) validate(ctx context.Context, contact *models.Contact, touched contactFieldSet) error {
	verr := validation.New()

	switch {
	case !touched.email:
	case contact.Email == "":
		verr.Add("email", validation.MsgFieldBlank, nil)
	case !validation.IsEmail(contact.Email):
		verr.Add("email", validation.MsgFieldInvalidEmail, nil)
	default:
		existing, err := s.contactRepo.FindByEmail(ctx, contact.Email)
		if err == nil && existing.ID != contact.ID {
			verr.Add("email", validation.MsgContactEmailTaken, nil)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check contact email: %w", err)
		}
	}
	if touched.firstname && contact.Firstname == "" {
		verr.Add("firstname", validation.MsgFieldBlank, nil)
	}
	if touched.phone && contact.Phone == "" {
		verr.Add("phone", validation.MsgFieldBlank, nil)
	}

	return verr.Err()
}

func emailTaken() error {
	return validation.FieldError("email", validation.MsgContactEmailTaken, nil)
}

func truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	return string([]rune(value)[:max])
}
