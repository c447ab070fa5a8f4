package generator

import "golang.org/x/tools/imports"

// formatAndFixImports formats Go source and fixes its import block: unused
// imports are dropped, and stdlib imports referenced but not yet declared
// are added. Third-party imports are never auto-added this way (it would
// need module-graph context this offline pass doesn't have), so every
// caller writes its full import block explicitly and relies on this only to
// prune it down to what the generated file actually uses.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
