// Command openapitor generates a typed Go client from an OpenAPI 3.x
// document.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/openapitor/openapitor/generator"
	"github.com/openapitor/openapitor/oaserrors"
)

type cliFlags struct {
	input                 string
	output                string
	patchFile             string
	name                  string
	description           string
	targetVersion         string
	baseURL               string
	specURL               string
	repoName              string
	requestTimeoutSeconds int
	tabled                bool
	retry                 bool
	js                    bool
}

func setupFlags() (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet("openapitor", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVar(&f.input, "i", "", "spec file path (required)")
	fs.StringVar(&f.output, "o", "", "output directory (required; cleared and repopulated)")
	fs.StringVar(&f.patchFile, "patch", "", "optional RFC 6902 JSON Patch file applied before lowering")
	fs.StringVar(&f.name, "n", "", "library name / Go module path (required)")
	fs.StringVar(&f.description, "d", "", "human description, used when info.description is absent")
	fs.StringVar(&f.targetVersion, "target-version", "", "semver stamped into VERSION.txt")
	fs.StringVar(&f.baseURL, "base-url", "", "default server used by the generated client")
	fs.StringVar(&f.specURL, "spec-url", "", "documentation cross-link stamped into the README")
	fs.StringVar(&f.repoName, "repo-name", "", "owner/repo used in the generated README")
	fs.IntVar(&f.requestTimeoutSeconds, "request-timeout-seconds", 30, "default per-call timeout")
	fs.BoolVar(&f.tabled, "tabled", false, "emit tabular header/row projection methods")
	fs.BoolVar(&f.retry, "retry", false, "set the retry feature gate (no emitted file varies with it)")
	fs.BoolVar(&f.js, "js", false, "set the js feature gate (no emitted file varies with it)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: openapitor -i <spec> -o <dir> -n <module/path> [flags]\n\n")
		fs.PrintDefaults()
	}

	return fs, f
}

func main() {
	fs, f := setupFlags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if f.input == "" || f.output == "" || f.name == "" {
		fs.Usage()
		os.Exit(1)
	}

	os.Exit(run(f))
}

func run(f *cliFlags) int {
	g := generator.New()
	g.ModulePath = f.name
	g.PackageName = lastPathSegment(f.name)
	g.Description = f.description
	g.TargetVersion = f.targetVersion
	g.BaseURL = f.baseURL
	g.SpecURL = f.specURL
	g.RepoName = f.repoName
	if f.requestTimeoutSeconds > 0 {
		g.RequestTimeoutSeconds = f.requestTimeoutSeconds
	}
	g.TabledSupport = f.tabled
	g.RetrySupport = f.retry
	g.JSSupport = f.js

	var patchJSON []byte
	if f.patchFile != "" {
		b, err := os.ReadFile(f.patchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "openapitor: reading patch file: %v\n", err)
			return exitCodeFor(err)
		}
		patchJSON = b
	}

	result, err := g.Generate(f.input, patchJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "openapitor: %v\n", err)
		return exitCodeFor(err)
	}

	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stderr, "openapitor: %s\n", issue.String())
	}

	if !result.Success {
		fmt.Fprintf(os.Stderr, "openapitor: generation failed: %d critical issue(s)\n", result.CriticalCount)
		return 2
	}

	if err := os.RemoveAll(f.output); err != nil {
		fmt.Fprintf(os.Stderr, "openapitor: clearing output directory: %v\n", err)
		return 3
	}
	if err := result.WriteFiles(f.output); err != nil {
		fmt.Fprintf(os.Stderr, "openapitor: %v\n", err)
		return 3
	}

	fmt.Printf("openapitor: generated %d type(s), %d operation(s) into %s\n",
		result.GeneratedTypes, result.GeneratedOperations, f.output)
	return 0
}

// exitCodeFor maps a pipeline error to the front-end exit code contract:
// spec load/patch/resolve/lower failures are "spec parse/validate failure",
// write failures are "output-write failure", everything else is a generic
// failure.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *oaserrors.SpecLoadError, *oaserrors.PatchError, *oaserrors.RefResolveError,
		*oaserrors.SchemaLoweringError, *oaserrors.NameMintError:
		return 2
	case *oaserrors.IOError:
		return 3
	default:
		return 1
	}
}

func lastPathSegment(modulePath string) string {
	for i := len(modulePath) - 1; i >= 0; i-- {
		if modulePath[i] == '/' {
			return sanitizePackageName(modulePath[i+1:])
		}
	}
	return sanitizePackageName(modulePath)
}

// sanitizePackageName strips characters a Go package clause can't contain
// (module path final segments commonly carry hyphens or dots, e.g.
// "widget-client" or "go-widget").
func sanitizePackageName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	if len(out) == 0 {
		return "api"
	}
	return string(out)
}
