package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrMalformedBody = errors.New("malformed request body")

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// Payload is a decoded JSON object whose values are kept raw until read.
type Payload map[string]json.RawMessage

// ParseObject decodes a request body. An empty body is an empty object.
func ParseObject(body []byte) (Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}, nil
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrMalformedBody
	}
	if payload == nil {
		return nil, ErrMalformedBody
	}
	return payload, nil
}

func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

func (p Payload) IsNull(field string) bool {
	raw, ok := p[field]
	return ok && isJSONNull(raw)
}

// StringRule describes how a string field is checked.
type StringRule struct {
	AllowBlank bool
	MinLength  int
	MaxLength  int
	// NoTrim keeps surrounding whitespace, as passwords require.
	NoTrim bool
}

// Reader reads typed fields out of a payload and records every problem in a shared Error.
// In partial mode absent fields are skipped instead of reported as required.
type Reader struct {
	payload Payload
	errs    *Error
	prefix  string
	partial bool
}

func NewReader(payload Payload, partial bool) *Reader {
	return &Reader{payload: payload, errs: New(), partial: partial}
}

func (r *Reader) Errors() *Error {
	return r.errs
}

func (r *Reader) Err() error {
	return r.errs.Err()
}

func (r *Reader) Partial() bool {
	return r.partial
}

func (r *Reader) Has(field string) bool {
	return r.payload.Has(field)
}

// Fail records a message for a field of this reader.
func (r *Reader) Fail(field, id string, data map[string]interface{}) {
	r.errs.Add(r.key(field), id, data)
}

func (r *Reader) key(field string) string {
	return r.prefix + field
}

// lookup returns the raw value when the field is present and not null.
// Missing required fields and nulls are reported.
func (r *Reader) lookup(field string, required, nullable bool) (json.RawMessage, bool) {
	raw, ok := r.payload[field]
	if !ok {
		if required && !r.partial {
			r.Fail(field, MsgFieldRequired, nil)
		}
		return nil, false
	}
	if isJSONNull(raw) {
		if !nullable {
			r.Fail(field, MsgFieldNull, nil)
		}
		return nil, false
	}
	return raw, true
}

// String reads a string field. The second result is true when a valid value was read.
func (r *Reader) String(field string, required bool, rule StringRule) (string, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		r.Fail(field, MsgFieldInvalidString, nil)
		return "", false
	}
	if !rule.NoTrim {
		value = strings.TrimSpace(value)
	}

	length := utf8.RuneCountInString(value)
	switch {
	case value == "" && !rule.AllowBlank:
		r.Fail(field, MsgFieldBlank, nil)
		return "", false
	case rule.MaxLength > 0 && length > rule.MaxLength:
		r.Fail(field, MsgFieldMaxLength, map[string]interface{}{"Max": rule.MaxLength})
		return "", false
	case rule.MinLength > 0 && length < rule.MinLength:
		r.Fail(field, MsgFieldMinLength, map[string]interface{}{"Min": rule.MinLength})
		return "", false
	}
	return value, true
}

// Email reads a string field and checks its format.
func (r *Reader) Email(field string, required bool, maxLength int) (string, bool) {
	value, ok := r.String(field, required, StringRule{MaxLength: maxLength})
	if !ok {
		return "", false
	}
	if !IsEmail(value) {
		r.Fail(field, MsgFieldInvalidEmail, nil)
		return "", false
	}
	return value, true
}

// Choice reads a string that must be one of choices.
func (r *Reader) Choice(field string, required bool, choices []string) (string, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		r.Fail(field, MsgFieldInvalidChoice, map[string]interface{}{"Value": string(raw)})
		return "", false
	}
	for _, choice := range choices {
		if value == choice {
			return value, true
		}
	}
	r.Fail(field, MsgFieldInvalidChoice, map[string]interface{}{"Value": value})
	return "", false
}

// Bool reads a boolean. The strings "true", "false", "1" and "0" are accepted too.
func (r *Reader) Bool(field string, required bool) (bool, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return false, false
	}

	var value bool
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	if string(raw) == "1" || string(raw) == "0" {
		return string(raw) == "1", true
	}

	r.Fail(field, MsgFieldInvalidBoolean, nil)
	return false, false
}

// Int reads an integer given either as number or numeric string.
func (r *Reader) Int(field string, required bool) (int, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return 0, false
	}
	value, ok := parseInt(raw)
	if !ok {
		r.Fail(field, MsgFieldInvalidInteger, nil)
		return 0, false
	}
	return value, true
}

// NullableInt reads an integer that may be null. present reports whether the field was sent and valid.
func (r *Reader) NullableInt(field string) (value *int, present bool) {
	if r.payload.IsNull(field) {
		return nil, true
	}
	raw, ok := r.lookup(field, false, true)
	if !ok {
		return nil, false
	}
	v, ok := parseInt(raw)
	if !ok {
		r.Fail(field, MsgFieldInvalidInteger, nil)
		return nil, false
	}
	return &v, true
}

// DateTime reads an ISO-8601 datetime or date. Values without a zone are taken as UTC.
func (r *Reader) DateTime(field string, required bool) (time.Time, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return time.Time{}, false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		r.Fail(field, MsgFieldInvalidDatetime, nil)
		return time.Time{}, false
	}
	value, ok := ParseDateTime(text)
	if !ok {
		r.Fail(field, MsgFieldInvalidDatetime, nil)
		return time.Time{}, false
	}
	return value, true
}

// IDList reads a list of identifiers given as numbers or numeric strings.
func (r *Reader) IDList(field string, required bool) ([]uint64, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		r.Fail(field, MsgFieldNotAList, map[string]interface{}{"Type": jsonType(raw)})
		return nil, false
	}

	ids := make([]uint64, 0, len(items))
	valid := true
	for _, item := range items {
		id, ok := ParseIDValue(item)
		if !ok {
			r.Fail(field, MsgFieldIncorrectPKType, map[string]interface{}{"Type": jsonType(item)})
			valid = false
			continue
		}
		ids = append(ids, id)
	}
	if !valid {
		return nil, false
	}
	return ids, true
}

// Objects reads a list of nested objects. Each returned reader reports under "<field>.<index>.".
func (r *Reader) Objects(field string, required bool) ([]*Reader, bool) {
	raw, ok := r.lookup(field, required, false)
	if !ok {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		r.Fail(field, MsgFieldNotAList, map[string]interface{}{"Type": jsonType(raw)})
		return nil, false
	}

	readers := make([]*Reader, 0, len(items))
	valid := true
	for i, item := range items {
		var nested Payload
		if err := json.Unmarshal(item, &nested); err != nil || nested == nil {
			r.Fail(field+"."+strconv.Itoa(i), MsgFieldNotAnObject, map[string]interface{}{"Type": jsonType(item)})
			valid = false
			continue
		}
		readers = append(readers, &Reader{
			payload: nested,
			errs:    r.errs,
			prefix:  r.key(field) + "." + strconv.Itoa(i) + ".",
		})
	}
	if !valid {
		return nil, false
	}
	return readers, true
}

// ParseDateTime parses the accepted datetime layouts and returns the instant in UTC.
func ParseDateTime(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dateTimeLayouts {
		if value, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return value.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseIDValue accepts a positive identifier as JSON number or numeric string.
func ParseIDValue(raw json.RawMessage) (uint64, bool) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(bytes.TrimSpace(raw))
	}
	id, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func parseInt(raw json.RawMessage) (int, bool) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(bytes.TrimSpace(raw))
	}
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err == nil {
		return value, true
	}
	// 3.0 is an integer, 3.5 is not
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func jsonType(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
