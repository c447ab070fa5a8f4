package generator

import (
	"bytes"
	"embed"
	"strconv"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
}

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

// displayData/schemaData parameterize the two uniform per-named-type
// methods every entry of the type table gets: a human-readable display
// form and a schema self-description. Unlike struct/enum/union bodies
// (emit_types.go's bytes.Buffer pass),
// these methods' shape is identical for every Kind, so one small
// text/template pass covers all of them, splitting buffer-written emission
// from templated emission.
type displayData struct {
	Name string
}

type schemaData struct {
	Name string
	Kind string
}

func (g *genState) writeDisplayMethod(buf *bytes.Buffer, name string) error {
	out, err := executeTemplate("display.tmpl", displayData{Name: name})
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}

func (g *genState) writeSchemaMethod(buf *bytes.Buffer, name, kind string) error {
	out, err := executeTemplate("schema.tmpl", schemaData{Name: name, Kind: kind})
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}

// executeTemplate renders the named embedded template. Output is not
// independently formatted here — every caller's buffer is run through
// formatAndFixImports once, at the whole-file level, since these templates
// render fragments rather than whole files.
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
