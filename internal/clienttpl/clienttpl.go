// Package clienttpl holds the fixed HTTP runtime that every generated
// client embeds verbatim as its own `utils` subpackage: a black-box
// dependency implementing the bit-exact wire contracts (date-time, base64,
// multipart, websocket upgrade, bearer auth, shared dispatch) every
// generated client needs regardless of the source document. Unlike
// generator's IR-driven templates, these files never see the Type IR or
// Operation IR — they are the same for every generated client, templated
// only to stamp the target module's package doc comment.
package clienttpl

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"text/template"
)

//go:embed runtime/*.go.tmpl
var runtimeFS embed.FS

var runtime *template.Template

func init() {
	var err error
	runtime, err = template.New("").ParseFS(runtimeFS, "runtime/*.go.tmpl")
	if err != nil {
		panic(err)
	}
}

// Data parameterizes the otherwise-fixed runtime templates.
type Data struct {
	// ModulePath is the generated client's module path, stamped into the
	// utils package doc comment so it reads correctly once vendored.
	ModulePath string
}

// File is one rendered runtime source file, named the way it should land
// in the generated client's utils/ directory (".tmpl" stripped).
type File struct {
	Name    string
	Content []byte
}

// Names returns the embedded template names in a stable, sorted order.
func Names() []string {
	entries, err := runtimeFS.ReadDir("runtime")
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Render executes every embedded runtime template against data and returns
// the resulting utils/ file set in stable name order.
func Render(data Data) ([]File, error) {
	names := Names()
	files := make([]File, 0, len(names))
	for _, name := range names {
		var buf bytes.Buffer
		if err := runtime.ExecuteTemplate(&buf, name, data); err != nil {
			return nil, fmt.Errorf("clienttpl: rendering %s: %w", name, err)
		}
		outName := name[:len(name)-len(".tmpl")]
		files = append(files, File{Name: outName, Content: buf.Bytes()})
	}
	return files, nil
}
