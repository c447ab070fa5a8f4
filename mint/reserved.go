package mint

import "strings"

// goKeywords are the true Go reserved keywords — not predeclared
// identifiers like "error" or "string", which can be shadowed and are
// routinely useful as generated type names.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// isReservedWord reports whether name collides with a Go keyword,
// case-insensitively, so that PascalCase renderings of keywords ("Range",
// "Type") are still caught.
func isReservedWord(name string) bool {
	return goKeywords[strings.ToLower(name)]
}

func startsWithDigit(name string) bool {
	return len(name) > 0 && name[0] >= '0' && name[0] <= '9'
}
