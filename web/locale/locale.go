// Package locale translates user-facing strings with go-i18n. Message files
// are TOML, one per language, under translation/.
package locale

import (
	"io/fs"
	"strings"

	"github.com/quillblog/quill/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	localizerKey = "localizer"
	langCookie   = "lang"
)

// NewBundle parses every message file found under dir in fsys, with English
// as the fallback language.
func NewBundle(fsys fs.FS, dir string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// LocalizerMiddleware picks the language from the lang cookie, falling back
// to Accept-Language, and stores a localizer on the request context.
func LocalizerMiddleware(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie(langCookie); err == nil {
			lang = cookie.Value
		}
		c.Set(localizerKey, i18n.NewLocalizer(bundle, lang, c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any, len(params))
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// I18n localizes key for the request. Params are "name==value" pairs for the
// message template. Without a localizer the key itself is returned.
func I18n(c *gin.Context, key string, params ...string) string {
	v, ok := c.Get(localizerKey)
	if !ok {
		return key
	}
	localizer, ok := v.(*i18n.Localizer)
	if !ok {
		return key
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}
