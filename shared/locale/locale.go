// Package locale resolves dot-separated key paths into per-language text
// trees. It is the text collaborator of the booking core: services report
// failures by key, handlers render them here.
package locale

import (
	"embed"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"courtside/shared/failure"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLanguage = "en"

var trees = map[string]map[string]any{}

func init() {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error().Err(err).Msg("failed to read embedded locales")

		return
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")

		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			log.Error().Err(err).Str("locale", lang).Msg("failed to read locale file")

			continue
		}

		tree := map[string]any{}
		if err := json.Unmarshal(raw, &tree); err != nil {
			log.Error().Err(err).Str("locale", lang).Msg("failed to parse locale file")

			continue
		}

		trees[lang] = tree
	}
}

// Lookup walks the language tree along the dot-separated key path. Unknown
// languages fall back to the default language; an unknown path is returned
// as-is so a missing translation stays visible instead of blank.
func Lookup(lang, path string) string {
	if msg, ok := lookup(lang, path); ok {
		return msg
	}

	if lang != DefaultLanguage {
		if msg, ok := lookup(DefaultLanguage, path); ok {
			return msg
		}
	}

	return path
}

// Resolve renders a Failure's locale key with its parameters interpolated.
// Failures without a key keep their literal message.
func Resolve(lang string, fail *failure.Failure) string {
	if fail.Key == "" {
		return fail.Message
	}

	msg := Lookup(lang, fail.Key)
	for name, value := range fail.Params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}

	return msg
}

// FromHeader extracts the primary language tag from an Accept-Language header.
func FromHeader(header string) string {
	if header == "" {
		return DefaultLanguage
	}

	lang := header
	if idx := strings.IndexAny(lang, ",;"); idx >= 0 {
		lang = lang[:idx]
	}

	if idx := strings.Index(lang, "-"); idx >= 0 {
		lang = lang[:idx]
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}

	return lang
}

func lookup(lang, path string) (string, bool) {
	node, ok := trees[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(path, ".")
	for i, part := range parts {
		value, ok := node[part]
		if !ok {
			return "", false
		}

		if i == len(parts)-1 {
			msg, ok := value.(string)

			return msg, ok
		}

		node, ok = value.(map[string]any)
		if !ok {
			return "", false
		}
	}

	return "", false
}
