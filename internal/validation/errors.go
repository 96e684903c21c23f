package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yukikurage/join-board-api/internal/translator"
)

// Message ids shared with the translation files.
const (
	MsgFieldRequired         = "fieldRequired"
	MsgFieldNull             = "fieldNull"
	MsgFieldBlank            = "fieldBlank"
	MsgFieldMaxLength        = "fieldMaxLength"
	MsgFieldMinLength        = "fieldMinLength"
	MsgFieldInvalidString    = "fieldInvalidString"
	MsgFieldInvalidEmail     = "fieldInvalidEmail"
	MsgFieldInvalidChoice    = "fieldInvalidChoice"
	MsgFieldInvalidDatetime  = "fieldInvalidDatetime"
	MsgFieldInvalidInteger   = "fieldInvalidInteger"
	MsgFieldInvalidBoolean   = "fieldInvalidBoolean"
	MsgFieldNotAList         = "fieldNotAList"
	MsgFieldNotAnObject      = "fieldNotAnObject"
	MsgFieldInvalidPK        = "fieldInvalidPK"
	MsgFieldIncorrectPKType  = "fieldIncorrectPKType"
	MsgContactEmailTaken     = "contactEmailTaken"
	MsgUserEmailTaken        = "userEmailTaken"
	MsgPasswordsMustMatch    = "passwordsMustMatch"
	MsgPrivacyPolicyRequired = "privacyPolicyRequired"
)

// Message is an untranslated field message.
type Message struct {
	ID   string
	Data map[string]interface{}
}

// Error collects messages per field. Nested fields use dotted keys such as "subtasks.0.title".
type Error struct {
	Fields map[string][]Message
}

func New() *Error {
	return &Error{Fields: make(map[string][]Message)}
}

// FieldError is a shortcut for an error carrying a single message.
func FieldError(field, id string, data map[string]interface{}) *Error {
	e := New()
	e.Add(field, id, data)
	return e
}

func (e *Error) Add(field, id string, data map[string]interface{}) {
	e.Fields[field] = append(e.Fields[field], Message{ID: id, Data: data})
}

// Merge copies the messages of other under prefix.
func (e *Error) Merge(prefix string, other *Error) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		e.Fields[prefix+field] = append(e.Fields[prefix+field], messages...)
	}
}

func (e *Error) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func (e *Error) Empty() bool {
	return len(e.Fields) == 0
}

// Err returns e as an error, or nil when nothing was collected.
func (e *Error) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		ids := make([]string, len(e.Fields[field]))
		for i, m := range e.Fields[field] {
			ids[i] = m.ID
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(ids, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Localize renders every message in the given language.
func (e *Error) Localize(lang string) map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for field, messages := range e.Fields {
		texts := make([]string, len(messages))
		for i, m := range messages {
			texts[i] = translator.Localize(lang, m.ID, m.Data)
		}
		out[field] = texts
	}
	return out
}

// As extracts a validation error from an error chain.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
