package i18n

import "golang.org/x/text/language"

var (
	supported = []Locale{English, Russian}
	matcher   = language.NewMatcher([]language.Tag{English.Tag, Russian.Tag})
)

// Keys lists the supported locale keys.
func Keys() []string {
	keys := make([]string, len(supported))
	for i, l := range supported {
		keys[i] = l.Key
	}
	return keys
}

// Lookup returns the locale for an exact key ("en", "ru").
func Lookup(key string) (Locale, bool) {
	for _, l := range supported {
		if l.Key == key {
			return l, true
		}
	}
	return Locale{}, false
}

// Negotiate picks a locale for a request. An explicit key wins; otherwise
// the Accept-Language header is matched against the supported tags. When
// neither yields a confident match the fallback is used.
func Negotiate(key, acceptLanguage string, fallback Locale) Locale {
	if l, ok := Lookup(key); ok {
		return l
	}
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[idx]
}
