// Package i18n translates the phrases used in messages and help text.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds translated phrases for a set of languages. Phrases of
// non-default languages must provide exactly the keys of the default one.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var defaultBundle = mustLoad()

func mustLoad() *Bundle {
	b, err := NewBundleFS(defaultLocales, "locales")
	if err != nil {
		panic("failed to load embedded locales: " + err.Error())
	}
	return b
}

// Default returns the bundle of embedded locales
func Default() *Bundle {
	return defaultBundle
}

// NewBundle returns a fresh bundle of the embedded locales
func NewBundle() (*Bundle, error) {
	return NewBundleFS(defaultLocales, "locales")
}

// NewBundleFS loads every <lang>.json file found in dir. The English file
// is loaded first since other languages are validated against it.
func NewBundleFS(fsys fs.FS, dir string) (*Bundle, error) {
	b := &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var others []fs.DirEntry
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		if lang != b.defaultLang {
			others = append(others, entry)
			continue
		}
		if err := b.loadFile(fsys, lang, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, entry := range others {
		lang := language.MustParse(strings.TrimSuffix(entry.Name(), ".json"))
		if err := b.loadFile(fsys, lang, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Bundle) loadFile(fsys fs.FS, lang language.Tag, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return b.AddLanguage(lang, translations)
}

// T returns the translation of key in the default language
func (b *Bundle) T(key string) string {
	b.mu.RLock()
	lang := b.defaultLang
	b.mu.RUnlock()

	return b.TL(lang, key)
}

// TL returns the translation of key in lang, falling back to the default
// language and then to the key itself.
func (b *Bundle) TL(lang language.Tag, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if t, ok := b.translations[lang]; ok {
		if _, ok := t[key]; ok {
			return b.printers[lang].Sprintf(key)
		}
	}
	if p := b.printers[b.defaultLang]; p != nil && b.translations[b.defaultLang][key] != "" {
		return p.Sprintf(key)
	}

	return key
}

// AddLanguage adds a language or merges translations into an existing one
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	original := b.translations[lang]
	merged := make(map[string]string, len(original)+len(translations))
	for k, v := range original {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if lang != b.defaultLang && original == nil {
		if errs := b.validate(lang, merged); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	return nil
}

// HasLanguage reports whether lang has translations
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang]
	return ok
}

// Match returns the supported language closest to the preferred ones
func (b *Bundle) Match(preferred ...language.Tag) language.Tag {
	langs := b.Languages()
	if len(langs) == 0 || len(preferred) == 0 {
		return b.DefaultLanguage()
	}
	_, index, confidence := language.NewMatcher(langs).Match(preferred...)
	if confidence == language.No {
		return b.DefaultLanguage()
	}
	return langs[index]
}

// Languages returns the supported languages, sorted by name
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang][key]
	return ok
}

// DefaultLanguage returns the language used by T
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

// SetDefaultLanguage sets the language used by T
func (b *Bundle) SetDefaultLanguage(lang language.Tag) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.translations[lang]; !ok {
		return fmt.Errorf("%w: %s", ErrLanguageNotFound, lang)
	}
	b.defaultLang = lang
	return nil
}

func (b *Bundle) validate(lang language.Tag, translations map[string]string) []error {
	if len(translations) == 0 {
		return []error{fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)}
	}

	defaults := b.translations[b.defaultLang]
	var errs []error
	for key := range defaults {
		if _, ok := translations[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Error() < errs[j].Error()
	})

	return errs
}
