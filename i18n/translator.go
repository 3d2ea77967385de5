package i18n

import "strings"

// Message codes understood by the built-in dictionary.
const (
	CodeInvalidType = "invalid_type"
	CodeVacant      = "vacant"
	CodeConflict    = "conflict"
	CodeInternal    = "internal"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "got", "depth" or "kind").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case CodeInvalidType:
			tmpl = "{expected} が必要ですが {got} でした"
		case CodeVacant:
			tmpl = "深さ {depth} のキーが存在しません"
		case CodeConflict:
			tmpl = "深さ {depth} の値は {kind} です"
		case CodeInternal:
			tmpl = "内部エラー"
		}
	default: // "en"
		switch code {
		case CodeInvalidType:
			tmpl = "expected {expected}, got {got}"
		case CodeVacant:
			tmpl = "no entry at depth {depth}"
		case CodeConflict:
			tmpl = "entry at depth {depth} is {kind}"
		case CodeInternal:
			tmpl = "internal error"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
