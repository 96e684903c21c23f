package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body string) Payload {
	t.Helper()
	payload, err := ParseObject([]byte(body))
	require.NoError(t, err)
	return payload
}

func TestParseObject(t *testing.T) {
	payload, err := ParseObject(nil)
	require.NoError(t, err)
	assert.Empty(t, payload)

	_, err = ParseObject([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrMalformedBody)

	_, err = ParseObject([]byte(`{"title":`))
	assert.ErrorIs(t, err, ErrMalformedBody)

	_, err = ParseObject([]byte(`null`))
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestReader_StringRules(t *testing.T) {
	r := NewReader(mustParse(t, `{"title":"  hello  ","blank":"   ","long":"abcdef","num":5,"nil":null}`), false)

	value, ok := r.String("title", true, StringRule{MaxLength: 10})
	assert.True(t, ok)
	assert.Equal(t, "hello", value)

	_, ok = r.String("blank", true, StringRule{})
	assert.False(t, ok)
	_, ok = r.String("long", true, StringRule{MaxLength: 3})
	assert.False(t, ok)
	_, ok = r.String("num", true, StringRule{})
	assert.False(t, ok)
	_, ok = r.String("nil", false, StringRule{})
	assert.False(t, ok)
	_, ok = r.String("missing", true, StringRule{})
	assert.False(t, ok)

	errs := r.Errors()
	assert.Equal(t, MsgFieldBlank, errs.Fields["blank"][0].ID)
	assert.Equal(t, MsgFieldMaxLength, errs.Fields["long"][0].ID)
	assert.Equal(t, 3, errs.Fields["long"][0].Data["Max"])
	assert.Equal(t, MsgFieldInvalidString, errs.Fields["num"][0].ID)
	assert.Equal(t, MsgFieldNull, errs.Fields["nil"][0].ID)
	assert.Equal(t, MsgFieldRequired, errs.Fields["missing"][0].ID)
}

func TestReader_PartialSkipsMissing(t *testing.T) {
	r := NewReader(mustParse(t, `{}`), true)

	_, ok := r.String("title", true, StringRule{})
	assert.False(t, ok)
	assert.NoError(t, r.Err())
}

func TestReader_Email(t *testing.T) {
	r := NewReader(mustParse(t, `{"good":"a@b.com","bad":"not-an-email"}`), false)

	value, ok := r.Email("good", true, 254)
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", value)

	_, ok = r.Email("bad", true, 254)
	assert.False(t, ok)
	assert.Equal(t, MsgFieldInvalidEmail, r.Errors().Fields["bad"][0].ID)
}

func TestReader_Choice(t *testing.T) {
	r := NewReader(mustParse(t, `{"status":"done","priority":"bogus"}`), false)

	value, ok := r.Choice("status", true, []string{"todo", "done"})
	assert.True(t, ok)
	assert.Equal(t, "done", value)

	_, ok = r.Choice("priority", true, []string{"low"})
	assert.False(t, ok)
	msg := r.Errors().Fields["priority"][0]
	assert.Equal(t, MsgFieldInvalidChoice, msg.ID)
	assert.Equal(t, "bogus", msg.Data["Value"])
}

func TestReader_BoolAndInt(t *testing.T) {
	r := NewReader(mustParse(t, `{"a":true,"b":"false","c":"maybe","i":3,"s":"7","f":2.5,"o":null}`), false)

	v, ok := r.Bool("a", false)
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = r.Bool("b", false)
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = r.Bool("c", false)
	assert.False(t, ok)

	i, ok := r.Int("i", false)
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = r.Int("s", false)
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = r.Int("f", false)
	assert.False(t, ok)

	order, present := r.NullableInt("o")
	assert.True(t, present)
	assert.Nil(t, order)

	order, present = r.NullableInt("i")
	assert.True(t, present)
	require.NotNil(t, order)
	assert.Equal(t, 3, *order)

	_, present = r.NullableInt("missing")
	assert.False(t, present)
}

func TestReader_DateTime(t *testing.T) {
	r := NewReader(mustParse(t, `{"a":"2025-01-01T10:30:00+02:00","b":"2025-01-01","c":"tomorrow"}`), false)

	a, ok := r.DateTime("a", true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC), a)

	b, ok := r.DateTime("b", true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), b)

	_, ok = r.DateTime("c", true)
	assert.False(t, ok)
	assert.Equal(t, MsgFieldInvalidDatetime, r.Errors().Fields["c"][0].ID)
}

func TestReader_IDList(t *testing.T) {
	r := NewReader(mustParse(t, `{"ok":["1",2],"bad":[true],"scalar":"1"}`), false)

	ids, ok := r.IDList("ok", false)
	assert.True(t, ok)
	assert.Equal(t, []uint64{1, 2}, ids)

	_, ok = r.IDList("bad", false)
	assert.False(t, ok)
	assert.Equal(t, MsgFieldIncorrectPKType, r.Errors().Fields["bad"][0].ID)

	_, ok = r.IDList("scalar", false)
	assert.False(t, ok)
	assert.Equal(t, MsgFieldNotAList, r.Errors().Fields["scalar"][0].ID)
}

func TestReader_ObjectsPrefixErrors(t *testing.T) {
	r := NewReader(mustParse(t, `{"subtasks":[{"title":"ok"},{"title":""}]}`), true)

	items, ok := r.Objects("subtasks", false)
	require.True(t, ok)
	require.Len(t, items, 2)

	for _, item := range items {
		item.String("title", true, StringRule{})
		item.Bool("completed", false)
	}

	errs := r.Errors()
	assert.True(t, errs.Has("subtasks.1.title"))
	assert.False(t, errs.Has("subtasks.0.title"))
	assert.Len(t, errs.Fields, 1)
}

func TestError_LocalizeAndAs(t *testing.T) {
	err := FieldError("email", MsgContactEmailTaken, nil).Err()

	verr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{
		"email": {"contact with this email already exists."},
	}, verr.Localize("en"))

	assert.Nil(t, New().Err())
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("guest@join.com"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("guest"))
}
