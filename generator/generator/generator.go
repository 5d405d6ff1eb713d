// Package generator turns a declarative table of foreign engine types into
// Go bindings on top of the uevr runtime package.
package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"golang.org/x/tools/go/packages"
	"gopkg.in/yaml.v3"

	internal "github.com/uevr-go/uevr/internal"
)

var (
	//go:embed templates/*
	templates embed.FS
)

// validate is a package level singleton, validator instances cache struct
// metadata.
var validate = validator.New()

// DefaultRuntime is the import path of the runtime package generated
// bindings call into.
const DefaultRuntime = "github.com/uevr-go/uevr"

// Config is the root of a type table. Schema returns the full format.
type Config struct {
	// Package of the generated file. Defaults to the package containing
	// the go:generate directive.
	Package string `yaml:"package" json:"package,omitempty"`

	// Runtime is the import path of the runtime package. Defaults to
	// DefaultRuntime.
	Runtime string `yaml:"runtime" json:"runtime,omitempty"`

	Types []TypeConfig `yaml:"types" json:"types" validate:"required,min=1,dive"`
}

// TypeConfig declares one foreign engine type.
type TypeConfig struct {
	// Name of the generated Go type.
	Name string `yaml:"name" json:"name" validate:"required"`

	// DisplayName is the engine side name, exposed as InternalName().
	DisplayName string `yaml:"displayName" json:"displayName,omitempty"`

	// Class is the full static class path, for example
	// "Class /Script/Engine.Pawn". It makes the type a checked cast
	// target.
	Class string `yaml:"class" json:"class,omitempty"`

	// Embed picks the capability chain the type attaches to.
	Embed string `yaml:"embed" json:"embed" validate:"required,oneof=Handle UObject UField UStruct UClass UFunction UScriptStruct UEnum UEngine UGameEngine UWorld FField FProperty FNumericProperty FArrayProperty FBoolProperty FStructProperty FEnumProperty IConsoleObject IConsoleVariable IConsoleCommand"`

	// Table declares a per-type function table exposed by the runtime.
	Table *TableConfig `yaml:"table" json:"table,omitempty"`
}

// TableConfig locates a function table. Either Field names a slot of the
// SDK block, or Root anchors a pointer path spelled out in Hops.
type TableConfig struct {
	Root  string   `yaml:"root" json:"root,omitempty" validate:"omitempty,oneof=sdk vr functions"`
	Hops  []uint32 `yaml:"hops" json:"hops,omitempty"`
	Field string   `yaml:"field" json:"field,omitempty"`
}

// sdkFields maps the named SDK block slots to their word indices.
var sdkFields = map[string]uint32{
	"functions":               internal.SDKFieldFunctions,
	"callbacks":               internal.SDKFieldCallbacks,
	"uobject":                 internal.SDKFieldUObject,
	"uobject_array":           internal.SDKFieldUObjectArray,
	"ffield":                  internal.SDKFieldFField,
	"fname":                   internal.SDKFieldFName,
	"fproperty":               internal.SDKFieldFProperty,
	"ustruct":                 internal.SDKFieldUStruct,
	"uclass":                  internal.SDKFieldUClass,
	"ufunction":               internal.SDKFieldUFunction,
	"uobject_hook":            internal.SDKFieldUObjectHook,
	"ffield_class":            internal.SDKFieldFFieldClass,
	"frhitexture2d":           internal.SDKFieldFRHITexture2D,
	"uscriptstruct":           internal.SDKFieldUScriptStruct,
	"farrayproperty":          internal.SDKFieldFArrayProperty,
	"fboolproperty":           internal.SDKFieldFBoolProperty,
	"fstructproperty":         internal.SDKFieldFStructProperty,
	"fenumproperty":           internal.SDKFieldFEnumProperty,
	"malloc":                  internal.SDKFieldMalloc,
	"render_target_pool_hook": internal.SDKFieldRenderTargetPoolHook,
	"stereo_hook":             internal.SDKFieldStereoHook,
	"console":                 internal.SDKFieldConsole,
	"ufield":                  internal.SDKFieldUField,
}

// tableRoots maps config root names to the runtime's TableRoot constants.
var tableRoots = map[string]string{
	"sdk":       "TableRootSDK",
	"vr":        "TableRootVR",
	"functions": "TableRootFunctions",
}

// LoadConfig reads and validates a type table.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("config %s is not valid: %w", path, err)
	}

	for i := range config.Types {
		if err := checkTable(&config.Types[i]); err != nil {
			return nil, fmt.Errorf("config %s is not valid: %w", path, err)
		}
	}

	return config, nil
}

func checkTable(t *TypeConfig) error {
	if t.Table == nil {
		return nil
	}

	if t.Table.Field != "" {
		if t.Table.Root != "" || len(t.Table.Hops) > 0 {
			return fmt.Errorf("type %s: table field and root/hops are mutually exclusive", t.Name)
		}

		if _, ok := sdkFields[t.Table.Field]; !ok {
			return fmt.Errorf("type %s: unknown sdk field %q", t.Name, t.Table.Field)
		}

		return nil
	}

	if t.Table.Root == "" {
		return fmt.Errorf("type %s: table needs either a field or a root", t.Name)
	}

	return nil
}

// Generate renders the bindings for the given config into one Go file. The
// target package is taken from the config, falling back to the package of
// goFile, which go:generate sets through GOFILE.
func Generate(dir string, goFile string, configPath string, outputPath string, verbose bool) error {
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(dir, configPath)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	pkgName := config.Package
	if pkgName == "" && goFile != "" {
		fset := token.NewFileSet()
		pkgs, err := packages.Load(&packages.Config{
			Fset: fset,
			Mode: packages.NeedSyntax | packages.NeedName | packages.NeedModule,
		}, fmt.Sprintf("file=%s", goFile))
		if err != nil {
			return err
		}

		if len(pkgs) > 0 {
			pkgName = pkgs[0].Name
		}
	}

	if pkgName == "" {
		return errors.New("no package name, set package in the config or run through go:generate")
	}

	runtime := config.Runtime
	if runtime == "" {
		runtime = DefaultRuntime
	}

	data := TemplateData{
		Pkg:     pkgName,
		Runtime: runtime,
	}

	for _, t := range config.Types {
		built := buildType(t)
		if built.ClassPath != "" || built.Table != nil {
			data.NeedsContext = true
		}

		data.Types = append(data.Types, built)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
		outputPath = base + "_gen.go"
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(dir, outputPath)
	}

	templates, err := template.New("").
		Funcs(TemplateFunctions).
		ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("generating %d types into %s", len(data.Types), outputPath)
	}

	return ExecuteTemplate(templates, "types.tmpl", outputPath, data)
}

func buildType(t TypeConfig) TemplateType {
	built := TemplateType{
		Name:         t.Name,
		Embed:        t.Embed,
		InternalName: t.DisplayName,
		ClassPath:    t.Class,
	}

	if t.Table != nil {
		table := &TemplateTable{SlotName: snake(t.Name)}
		if t.Table.Field != "" {
			table.Root = tableRoots["sdk"]
			table.Hops = []uint32{sdkFields[t.Table.Field]}
		} else {
			table.Root = tableRoots[t.Table.Root]
			table.Hops = t.Table.Hops
		}

		built.Table = table
	}

	return built
}

// snake converts a Go type name to a lower snake case diagnostics name.
func snake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Schema returns the JSON schema of the config format.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Config{})

	return json.MarshalIndent(schema, "", "  ")
}

var TemplateFunctions = template.FuncMap{
	"lower": strings.ToLower,
}

// ExecuteTemplate renders one template into a gofmt formatted file.
func ExecuteTemplate(tmpl *template.Template, name string, path string, data TemplateData) error {
	writer := bytes.NewBuffer(nil)
	err := tmpl.ExecuteTemplate(writer, name, data)
	if err != nil {
		return err
	}

	fileBytes := writer.Bytes()
	formattedSource, err := format.Source(fileBytes)
	if err != nil {
		return fmt.Errorf("could not format %s: %w\nsource:\n%s", name, err, fileBytes)
	}

	fileWriter, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	_, err = fileWriter.Write(formattedSource)
	if err != nil {
		return err
	}

	return nil
}

type TemplateData struct {
	Pkg          string
	Runtime      string
	NeedsContext bool
	Types        []TemplateType
}

type TemplateType struct {
	Name         string
	Embed        string
	InternalName string
	ClassPath    string
	Table        *TemplateTable
}

type TemplateTable struct {
	SlotName string
	Root     string
	Hops     []uint32
}
