package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/translator"
)

// LanguageMiddleware stores the Accept-Language header for localized responses.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(constants.ContextKeyLang, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(constants.ContextKeyLang); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
