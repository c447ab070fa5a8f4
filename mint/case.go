package mint

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case selects the target identifier case family.
type Case int

const (
	// CasePascal renders "UserProfile" style, used for type names.
	CasePascal Case = iota
	// CaseCamel renders "userProfile" style, used for parameter names.
	CaseCamel
	// CaseSnake renders "user_profile" style, used for field/method names.
	CaseSnake
	// CaseScreaming renders "USER_PROFILE" style, used for constants.
	CaseScreaming
	// CaseKebab renders "user-profile" style, used for file/module names.
	CaseKebab
)

var (
	titleCaser = cases.Title(language.Und)
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// pascalToken title-cases a single token after folding it to lowercase, so
// "ID", "Id" and "id" all render identically regardless of how the spec
// author happened to cased the source identifier.
func pascalToken(tok string) string {
	return titleCaser.String(lowerCaser.String(tok))
}

// applyCase joins tokens under the requested case family.
func applyCase(tokens []string, c Case) string {
	if len(tokens) == 0 {
		return ""
	}
	switch c {
	case CasePascal:
		var b strings.Builder
		for _, t := range tokens {
			b.WriteString(pascalToken(t))
		}
		return b.String()
	case CaseCamel:
		var b strings.Builder
		for i, t := range tokens {
			if i == 0 {
				b.WriteString(lowerCaser.String(t))
			} else {
				b.WriteString(pascalToken(t))
			}
		}
		return b.String()
	case CaseSnake:
		parts := make([]string, len(tokens))
		for i, t := range tokens {
			parts[i] = lowerCaser.String(t)
		}
		return strings.Join(parts, "_")
	case CaseKebab:
		parts := make([]string, len(tokens))
		for i, t := range tokens {
			parts[i] = lowerCaser.String(t)
		}
		return strings.Join(parts, "-")
	case CaseScreaming:
		parts := make([]string, len(tokens))
		for i, t := range tokens {
			parts[i] = upperCaser.String(t)
		}
		return strings.Join(parts, "_")
	default:
		var b strings.Builder
		for _, t := range tokens {
			b.WriteString(pascalToken(t))
		}
		return b.String()
	}
}
