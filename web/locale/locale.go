// Package locale provides localization of user-facing panel messages.
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/fleetpanel/fleetpanel/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle   *i18n.Bundle
	LocalizerWeb *i18n.Localizer
)

// InitLocalizer parses the embedded translation catalogs. English is the
// default language.
func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(language.MustParse("en-US"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return parseTranslationFiles(i18nFS, i18nBundle)
}

func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// I18n localizes the message identified by key, with "Name==value" pairs as
// template parameters.
func I18n(key string, params ...string) string {
	if LocalizerWeb == nil {
		// Localizer not ready; fall back to the key to avoid a nil panic.
		return key
	}

	msg, err := LocalizerWeb.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Errorf("Failed to localize message: %v", err)
		return key
	}

	return msg
}

// LocalizerMiddleware selects the request language from the "lang" cookie,
// falling back to the Accept-Language header.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		LocalizerWeb = i18n.NewLocalizer(i18nBundle, lang)

		c.Set("localizer", LocalizerWeb)
		c.Set("I18n", I18n)
		c.Next()
	}
}

func parseTranslationFiles(i18nFS embed.FS, i18nBundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}

			_, err = i18nBundle.ParseMessageFileBytes(data, path)
			return err
		})
}
