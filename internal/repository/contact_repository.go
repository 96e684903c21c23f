package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/join-board-api/internal/database"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/utils"
	"gorm.io/gorm"
)

var contactSearchColumns = []string{"firstname", "lastname", "email", "phone"}

var defaultContactOrdering = []utils.OrderField{
	{Column: "firstname"},
	{Column: "lastname"},
}

// GormContactRepository is a GORM implementation of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// Create creates a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindByID finds a contact by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uint64) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByEmail finds a contact by email
func (r *GormContactRepository) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update saves all fields of a contact
func (r *GormContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete removes the contact's assignments first so no task keeps a dangling reference.
// Tasks themselves are left untouched.
func (r *GormContactRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Contact{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List retrieves contacts with search, filters and ordering
func (r *GormContactRepository) List(ctx context.Context, filter ContactFilter) ([]models.Contact, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})

	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Firstname != nil {
		query = query.Where("firstname = ?", *filter.Firstname)
	}
	if filter.Lastname != nil {
		query = query.Where("lastname = ?", *filter.Lastname)
	}

	contacts := []models.Contact{}
	err := query.
		Scopes(
			database.Search(filter.Search, contactSearchColumns...),
			database.Ordering(filter.Ordering, defaultContactOrdering...),
		).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

// ExistingIDs returns which of the given IDs exist
func (r *GormContactRepository) ExistingIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
	existing := []uint64{}
	if len(ids) == 0 {
		return existing, nil
	}

	err := r.db.WithContext(ctx).Model(&models.Contact{}).Where("id IN ?", ids).Pluck("id", &existing).Error
	return existing, err
}

// FirstOrCreateByEmail loads the contact with contact.Email, or creates it from contact.
// A concurrent insert of the same email is resolved by reading the winner's row.
func (r *GormContactRepository) FirstOrCreateByEmail(ctx context.Context, contact *models.Contact) (bool, error) {
	db := r.db.WithContext(ctx)

	result := db.Where(models.Contact{Email: contact.Email}).FirstOrCreate(contact)
	if result.Error == nil {
		return result.RowsAffected > 0, nil
	}
	if !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return false, result.Error
	}

	if err := db.Where("email = ?", contact.Email).First(contact).Error; err != nil {
		return false, err
	}
	return false, nil
}
