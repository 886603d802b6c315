package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-storefront-admin/components/admin"
	"github.com/goliatone/go-storefront-admin/components/commerce"
	"github.com/goliatone/go-storefront-admin/pkg/storefront"
)

type cli struct {
	Serve       serveCmd       `cmd:"" help:"Run the storefront admin dashboard server."`
	SeedSession seedSessionCmd `cmd:"" name:"seed-session" help:"Write a persisted session file so the next boot starts signed in."`
	Scaffold    scaffoldCmd    `cmd:"" help:"Add a widget definition to a dashboard manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("E-commerce admin dashboard with generated demo data."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type serveCmd struct {
	Addr       string `default:":8080" help:"Listen address."`
	SessionDir string `type:"path" help:"Directory for the persisted session file. Empty keeps sessions in memory."`
	Seed       int64  `help:"Fix the data generator seed for reproducible collections."`
	Manifest   string `type:"path" help:"Optional widget manifest to load at startup."`
	Config     string `type:"path" help:"Optional YAML config file; flags override its values."`

	AutoLoginEmail string `help:"Sign this user in at startup when no persisted session exists."`
	AutoLoginName  string `default:"Demo Admin" help:"Display name for the auto-login user."`
	AutoLoginRole  string `default:"Admin" enum:"Admin,Manager" help:"Role for the auto-login user."`
}

// fileConfig mirrors the serve flags for YAML configuration.
type fileConfig struct {
	Addr           string `yaml:"addr"`
	SessionDir     string `yaml:"session_dir"`
	Seed           int64  `yaml:"seed"`
	Manifest       string `yaml:"manifest"`
	AutoLoginEmail string `yaml:"auto_login_email"`
	AutoLoginName  string `yaml:"auto_login_name"`
	AutoLoginRole  string `yaml:"auto_login_role"`
}

func (cmd *serveCmd) Run(_ context.Context) error {
	if cmd.Config != "" {
		if err := cmd.applyFile(cmd.Config); err != nil {
			return err
		}
	}

	cfg := storefront.Config{
		Addr:         cmd.Addr,
		SessionDir:   cmd.SessionDir,
		Seed:         cmd.Seed,
		ManifestPath: cmd.Manifest,
	}
	if cmd.AutoLoginEmail != "" {
		role, err := commerce.ParseRole(cmd.AutoLoginRole)
		if err != nil {
			return err
		}
		cfg.AutoLoginUser = &commerce.User{
			Name:  cmd.AutoLoginName,
			Email: cmd.AutoLoginEmail,
			Role:  role,
		}
	}

	app, err := storefront.New(cfg)
	if err != nil {
		return err
	}
	log.Printf("storefront admin listening on %s", cmd.Addr)
	return app.Serve()
}

func (cmd *serveCmd) applyFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if cmd.Addr == ":8080" && file.Addr != "" {
		cmd.Addr = file.Addr
	}
	if cmd.SessionDir == "" {
		cmd.SessionDir = file.SessionDir
	}
	if cmd.Seed == 0 {
		cmd.Seed = file.Seed
	}
	if cmd.Manifest == "" {
		cmd.Manifest = file.Manifest
	}
	if cmd.AutoLoginEmail == "" {
		cmd.AutoLoginEmail = file.AutoLoginEmail
	}
	if cmd.AutoLoginName == "Demo Admin" && file.AutoLoginName != "" {
		cmd.AutoLoginName = file.AutoLoginName
	}
	if cmd.AutoLoginRole == "Admin" && file.AutoLoginRole != "" {
		cmd.AutoLoginRole = file.AutoLoginRole
	}
	return nil
}

type seedSessionCmd struct {
	Dir   string `required:"" type:"path" help:"Directory for the session file."`
	Email string `required:"" help:"Email of the signed-in user."`
	Name  string `default:"Demo Admin" help:"Display name."`
	Role  string `default:"Admin" enum:"Admin,Manager" help:"User role."`
	Theme string `default:"dark" enum:"dark,light" help:"Persisted theme."`
}

func (cmd *seedSessionCmd) Run(_ context.Context) error {
	role, err := commerce.ParseRole(cmd.Role)
	if err != nil {
		return err
	}
	sessions := commerce.NewFileSessionStore(cmd.Dir)
	record := commerce.PersistedSession{
		LoggedIn: true,
		User: &commerce.User{
			Name:  cmd.Name,
			Email: cmd.Email,
			Role:  role,
		},
		Theme: commerce.Theme(cmd.Theme),
	}
	if err := sessions.Save(record); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", sessions.Path())
	return nil
}

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified widget code (e.g. acme.widget.top_sellers)."`
	Name         string   `required:"" help:"Display name for the widget."`
	Description  string   `required:"" help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Widget category (stats, charts, tables)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the widget manifest YAML file to update."`
	SchemaPath   string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag          []string `help:"Optional tags to include in the manifest."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Overwrite    bool     `help:"Overwrite an existing manifest entry."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("widget code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Definition.Code == cmd.Code {
				return fmt.Errorf("manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	entry := admin.ManifestWidget{
		Definition: admin.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	replaced := false
	if cmd.Overwrite {
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Definition.Code == cmd.Code {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
	}
	if !replaced {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Definition.Code < doc.Widgets[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "added %s (%s) to %s\n", cmd.Code, deriveBaseName(cmd.Code), manifestPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*admin.ManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &admin.ManifestDocument{
				Version: admin.ManifestVersion,
				Widgets: []admin.ManifestWidget{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("stat manifest: %w", err)
	}
	return admin.ReadManifest(path)
}

func writeManifest(path string, doc *admin.ManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}
