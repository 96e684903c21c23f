package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_LoadsEmbeddedFiles(t *testing.T) {
	require.NoError(t, Init())
	require.NoError(t, Init())
}

func TestLocalize_English(t *testing.T) {
	assert.Equal(t, "Invalid credentials", Localize(LanguageEn, "invalidCredentials", nil))
	assert.Equal(t, "Invalid status", Localize(LanguageEn, "invalidStatus", nil))
	assert.Equal(t, "Subtask not found", Localize(LanguageEn, "subtaskNotFound", nil))
}

func TestLocalize_German(t *testing.T) {
	assert.Equal(t, "Ungültige Anmeldedaten", Localize("de-DE,de;q=0.9,en;q=0.8", "invalidCredentials", nil))
}

func TestLocalize_TemplateData(t *testing.T) {
	msg := Localize(LanguageEn, "fieldMaxLength", map[string]interface{}{"Max": 100})
	assert.Equal(t, "Ensure this field has no more than 100 characters.", msg)

	msg = Localize(LanguageEn, "fieldInvalidChoice", map[string]interface{}{"Value": "bogus"})
	assert.Equal(t, `"bogus" is not a valid choice.`, msg)
}

func TestLocalize_FallbacksToEnglish(t *testing.T) {
	assert.Equal(t, "Not found.", Localize("fr", "notFound", nil))
	assert.Equal(t, "Not found.", Localize("", "notFound", nil))
}

func TestLocalize_UnknownID(t *testing.T) {
	assert.Equal(t, "unknown_key", Localize(LanguageEn, "unknown_key", nil))
}
