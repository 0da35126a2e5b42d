package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fsnotify/fsnotify"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docgen/pkg/engine/trace"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/validation"
)

type config struct {
	template     string
	data         string
	output       string
	format       string
	themePath    string
	themeVariant string
	validateOnly bool
	interactive  bool
	failFast     bool
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.template, "template", "", "template document path (JSON or YAML)")
	flag.StringVar(&cfg.data, "data", "", "bindings file (JSON or YAML)")
	flag.StringVar(&cfg.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&cfg.format, "format", "trace", "output format: trace, json, or msgpack")
	flag.StringVar(&cfg.themePath, "theme", "", "theme manifest file")
	flag.StringVar(&cfg.themeVariant, "variant", "", "theme variant name")
	flag.BoolVar(&cfg.validateOnly, "validate", false, "validate the template and exit")
	flag.BoolVar(&cfg.interactive, "interactive", false, "prompt for missing bindings")
	flag.BoolVar(&cfg.failFast, "fail-fast", false, "abort rendering on validation errors")
	watch := flag.Bool("watch", false, "re-render when the template or data file changes")
	flag.Parse()

	if cfg.template == "" {
		log.Fatalf("missing required -template flag")
	}
	switch cfg.format {
	case "trace", "json", "msgpack":
	default:
		log.Fatalf("unknown format %q (want trace, json, or msgpack)", cfg.format)
	}

	ctx := context.Background()

	if *watch {
		if err := runWatch(ctx, cfg); err != nil {
			log.Fatalf("watch: %v", err)
		}
		return
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	tree, err := node.NewLoader().Load(ctx, node.SourceFromFile(cfg.template))
	if err != nil {
		return err
	}

	bindings, err := loadBindings(cfg.data)
	if err != nil {
		return err
	}

	options, themeName, err := buildOptions(cfg)
	if err != nil {
		return err
	}
	gen := orchestrator.New(options...)

	req := orchestrator.Request{
		Tree:         tree,
		Bindings:     bindings,
		Theme:        themeName,
		ThemeVariant: cfg.themeVariant,
	}

	if cfg.validateOnly {
		report, err := gen.Validate(ctx, req)
		if err != nil {
			return err
		}
		printIssues(os.Stderr, report.Issues)
		if report.HasErrors() {
			return fmt.Errorf("template has %d validation error(s)", report.Count(validation.SeverityError))
		}
		fmt.Fprintf(os.Stderr, "%s: valid (%d warning(s))\n", cfg.template, report.Count(validation.SeverityWarning))
		return nil
	}

	if cfg.interactive {
		if err := promptMissing(tree, bindings); err != nil {
			return err
		}
	}

	recorder := trace.NewRecorder()
	result, err := gen.Generate(ctx, req, recorder)
	if result != nil {
		printIssues(os.Stderr, result.Validation.Issues)
		if !cfg.interactive {
			for _, name := range result.MissingBindings {
				fmt.Fprintf(os.Stderr, "warning: binding %q is not satisfied\n", name)
			}
		}
	}
	if err != nil {
		return err
	}

	return writeOutput(cfg, recorder)
}

// runWatch re-renders on every write to the template or data file. Render
// failures are logged, never fatal: the next save gets another chance.
func runWatch(ctx context.Context, cfg config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.template); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.template, err)
	}
	if cfg.data != "" {
		if err := watcher.Add(cfg.data); err != nil {
			return fmt.Errorf("watch %s: %w", cfg.data, err)
		}
	}

	if err := run(ctx, cfg); err != nil {
		log.Printf("render: %v", err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Printf("change detected: %s", event.Name)
			if err := run(ctx, cfg); err != nil {
				log.Printf("render: %v", err)
			}
			// Editors replace files on save; re-add so the watch survives.
			_ = watcher.Add(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func buildOptions(cfg config) ([]orchestrator.Option, string, error) {
	var options []orchestrator.Option
	if cfg.failFast {
		options = append(options, orchestrator.WithFailFast())
	}
	if cfg.themePath == "" {
		return options, "", nil
	}

	manifest, err := loadManifest(cfg.themePath)
	if err != nil {
		return nil, "", err
	}
	options = append(options, orchestrator.WithThemeSelector(manifestSelector{manifest: manifest}))
	return options, manifest.Name, nil
}

// manifestSelector serves a single manifest loaded from disk; variant
// resolution happens downstream against the manifest's variant table.
type manifestSelector struct {
	manifest *theme.Manifest
}

func (s manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != s.manifest.Name {
		return nil, fmt.Errorf("unknown theme %q (manifest provides %q)", name, s.manifest.Name)
	}
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: s.manifest}, nil
}

func loadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme manifest: %w", err)
	}
	var manifest theme.Manifest
	if err := decodeDocument(data, &manifest); err != nil {
		return nil, fmt.Errorf("decode theme manifest %s: %w", path, err)
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("theme manifest %s has no name", path)
	}
	return &manifest, nil
}

func loadBindings(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings: %w", err)
	}
	bindings := map[string]any{}
	if err := decodeDocument(data, &bindings); err != nil {
		return nil, fmt.Errorf("decode bindings %s: %w", path, err)
	}
	return bindings, nil
}

// decodeDocument sniffs JSON by its leading brace, otherwise parses YAML.
func decodeDocument(data []byte, out any) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return json.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

// promptMissing asks for a value for every unsatisfied binding root and
// grafts the answers into the bindings map.
func promptMissing(tree *node.Node, bindings map[string]any) error {
	for _, name := range orchestrator.AuditBindings(tree, bindings) {
		var answer string
		prompt := &survey.Input{
			Message: fmt.Sprintf("Value for %s:", name),
			Help:    "Used by a {{ ... }} expression in the template.",
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return err
		}
		setBinding(bindings, name, answer)
	}
	return nil
}

func setBinding(bindings map[string]any, path, value string) {
	parts := strings.Split(path, ".")
	current := bindings
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func printIssues(w io.Writer, issues []validation.Issue) {
	for _, issue := range issues {
		fmt.Fprintln(w, issue.String())
	}
}

func writeOutput(cfg config, recorder *trace.Recorder) error {
	var out io.Writer = os.Stdout
	if cfg.output != "" {
		file, err := os.Create(cfg.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch cfg.format {
	case "trace":
		return recorder.Report(out)
	case "json":
		payload, err := recorder.JSON()
		if err != nil {
			return err
		}
		_, err = out.Write(append(payload, '\n'))
		return err
	case "msgpack":
		payload, err := recorder.Capture()
		if err != nil {
			return err
		}
		_, err = out.Write(payload)
		return err
	default:
		return fmt.Errorf("unknown format %q", cfg.format)
	}
}
