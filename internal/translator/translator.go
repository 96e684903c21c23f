package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageDe = "de"

	translationFolder = "translations"
)

//go:embed translations/*.toml
var translationFS embed.FS

var (
	bundle  *i18n.Bundle
	loadErr error
	once    sync.Once
)

// Init loads the embedded message files. It is safe to call more than once.
func Init() error {
	once.Do(func() {
		bundle, loadErr = load(translationFS)
	})
	return loadErr
}

func load(fsys fs.FS) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.ReadDir(fsys, translationFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to list translation folder: %w", err)
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := b.LoadMessageFileFS(fsys, translationFolder+"/"+f.Name()); err != nil {
			return nil, fmt.Errorf("failed to load translation file %s: %w", f.Name(), err)
		}
	}

	return b, nil
}

// Localize renders the message for the first matching language of an Accept-Language value.
// Unknown ids come back unchanged.
func Localize(lang, messageID string, data map[string]interface{}) string {
	if err := Init(); err != nil {
		zap.L().Warn("translator unavailable", zap.Error(err))
		return messageID
	}

	localizer := i18n.NewLocalizer(bundle, lang, LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}
