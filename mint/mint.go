package mint

import "fmt"

// Placeholder values for step 4 of the mint algorithm: when tokenizing and
// case-converting a raw name leaves nothing usable, a digit-leading result,
// or a bare reserved word, the raw tokens are prefixed with one of these
// before the case is (re-)applied.
const (
	PlaceholderType  = "type"
	PlaceholderField = "field"
	PlaceholderN     = "n"
)

// Mint converts raw into a deterministic identifier in case family c. scope
// may be nil for one-off, non-colliding mints (e.g. a single top-level
// wrapper type); when non-nil, a collision with an identifier already
// minted in scope is resolved by appending "_2", "_3", ... and the original
// raw name is recorded so the caller can still round-trip the wire name for
// renamed fields/variants.
func Mint(raw string, c Case, placeholder string, scope *Scope) string {
	tokens := tokenize(raw)
	name := applyCase(tokens, c)

	if name == "" || isReservedWord(name) || startsWithDigit(name) {
		tokens = append([]string{placeholder}, tokens...)
		name = applyCase(tokens, c)
	}

	if scope == nil {
		return name
	}

	base := name
	for i := 2; scope.taken(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	if name != base {
		scope.originals[name] = raw
	}
	scope.reserve(name)
	return name
}
