package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/dto"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/middleware"
	"github.com/yukikurage/join-board-api/internal/services"
	"github.com/yukikurage/join-board-api/internal/validation"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ListContacts returns the contacts, optionally filtered, searched and ordered
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contactService.ListContacts(c.Request.Context(), services.ListContactsInput{
		Search:    c.Query("search"),
		Ordering:  c.Query("ordering"),
		Email:     queryFilter(c, "email"),
		Firstname: queryFilter(c, "firstname"),
		Lastname:  queryFilter(c, "lastname"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTOs(contacts))
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact))
}

// CreateContact creates a new contact
func (h *ContactHandler) CreateContact(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	patch, err := readContact(validation.NewReader(payload, false))
	if err != nil {
		respondError(c, err)
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), services.ContactFields{
		Email:     deref(patch.Email),
		Firstname: deref(patch.Firstname),
		Lastname:  deref(patch.Lastname),
		Phone:     deref(patch.Phone),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactDTO(*contact))
}

// UpdateContact replaces the contact fields (PUT)
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdateContact changes only the sent fields (PATCH)
func (h *ContactHandler) PartialUpdateContact(c *gin.Context) {
	h.update(c, true)
}

func (h *ContactHandler) update(c *gin.Context, partial bool) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	payload, ok := readPayload(c)
	if !ok {
		return
	}

	// an unknown id answers 404 before the body is validated
	if _, err := h.contactService.GetContact(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	patch, err := readContact(validation.NewReader(payload, partial))
	if err != nil {
		respondError(c, err)
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact))
}

// DeleteContact removes the contact and unassigns it from its tasks
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c)
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func readContact(r *validation.Reader) (services.ContactPatch, error) {
	var patch services.ContactPatch

	if email, ok := r.Email("email", true, constants.MaxEmailLength); ok {
		patch.Email = &email
	}
	if firstname, ok := r.String("firstname", true, validation.StringRule{MaxLength: constants.MaxContactNameLength}); ok {
		patch.Firstname = &firstname
	}
	if lastname, ok := r.String("lastname", false, validation.StringRule{AllowBlank: true, MaxLength: constants.MaxContactNameLength}); ok {
		patch.Lastname = &lastname
	}
	if phone, ok := r.String("phone", true, validation.StringRule{MaxLength: constants.MaxPhoneLength}); ok {
		patch.Phone = &phone
	}

	return patch, r.Err()
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
