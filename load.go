package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"gopkg.in/ini.v1"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var DATABASE_SCHEMA = jsonschema.MustCompileString("database.schema.json", `{
	"type": "object",
	"required": ["Mods"],
	"properties": {
		"Mods": {
			"type": "object",
			"additionalProperties": {"$ref": "#/$defs/mod"}
		}
	},
	"$defs": {
		"mod": {
			"type": "object",
			"properties": {
				"description": {"type": ["string", "null"]},
				"main image": {"type": ["string", "null"]},
				"id": {
					"type": "object",
					"additionalProperties": {"type": ["string", "integer"]}
				},
				"images": {
					"type": "object",
					"additionalProperties": {"type": "array", "items": {"type": "string"}}
				},
				"categories": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`)

var REGISTRY_SCHEMA = jsonschema.MustCompileString("registry.schema.json", `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["id", "name"],
		"properties": {
			"id": {"type": "integer", "minimum": 0},
			"name": {"type": "string", "minLength": 1}
		}
	}
}`)

func validate(schema *jsonschema.Schema, bl []byte) error {
	var doc any
	err := json.Unmarshal(bl, &doc)
	if err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	err = schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("failed to validate JSON: %w", err)
	}
	return nil
}

// nil when `val` is missing or null.
func nullable_string(val gjson.Result) *string {
	if !val.Exists() || val.Type == gjson.Null {
		return nil
	}
	s := val.String()
	return &s
}

func parse_mod(key string, val gjson.Result) ModEntry {
	fields := val.Map()
	mod := ModEntry{
		Key:         key,
		Description: nullable_string(fields["description"]),
		MainImage:   nullable_string(fields["main image"]),
		IDList:      []GameID{},
		ImageMap:    map[string][]string{},
		Categories:  []string{},
	}

	// `ForEach` visits object members in document order, unlike `Map`.
	fields["id"].ForEach(func(game, id gjson.Result) bool {
		mod.IDList = append(mod.IDList, GameID{Game: game.String(), ID: id.String()})
		return true
	})

	fields["images"].ForEach(func(game, image_list gjson.Result) bool {
		filename_list := []string{}
		for _, filename := range image_list.Array() {
			filename_list = append(filename_list, filename.String())
		}
		mod.ImageMap[game.String()] = filename_list
		return true
	})

	for _, category := range fields["categories"].Array() {
		mod.Categories = append(mod.Categories, category.String())
	}

	return mod
}

// parses the mod database, preserving the order of mods.
func parse_catalog(bl []byte) (*Catalog, error) {
	err := validate(DATABASE_SCHEMA, bl)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	gjson.GetBytes(bl, "Mods").ForEach(func(key, val gjson.Result) bool {
		catalog.Add(parse_mod(key.String(), val))
		return true
	})
	return catalog, nil
}

func parse_registry(bl []byte) (GameRegistry, error) {
	err := validate(REGISTRY_SCHEMA, bl)
	if err != nil {
		return nil, err
	}

	registry := GameRegistry{}
	err = json.Unmarshal(bl, &registry)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game registry: %w", err)
	}
	for key, game := range registry {
		game.Key = key
		registry[key] = game
	}
	return registry, nil
}

// every game a mod links to or has images for must be in the registry.
func check_references(catalog *Catalog, registry GameRegistry) error {
	err_list := []error{}
	for _, mod := range catalog.ModList() {
		game_list := []string{}
		for _, gid := range mod.IDList {
			game_list = append(game_list, gid.Game)
		}
		image_game_list := []string{}
		for game := range mod.ImageMap {
			image_game_list = append(image_game_list, game)
		}
		slices.Sort(image_game_list)
		game_list = append(game_list, image_game_list...)
		for _, game := range unique(game_list) {
			_, present := registry[game]
			if !present {
				err_list = append(err_list, fmt.Errorf("mod %q references unknown game %q", mod.Key, game))
			}
		}
	}
	return errors.Join(err_list...)
}

// settings as found in the config file.
type FileConfig struct {
	Game       string
	Category   string
	Columns    int
	HasColumns bool
}

func parse_config(bl []byte) (FileConfig, error) {
	empty_response := FileConfig{}
	cfg, err := ini.Load(bl)
	if err != nil {
		return empty_response, fmt.Errorf("failed to parse config: %w", err)
	}

	section := cfg.Section(ini.DefaultSection)
	fc := FileConfig{
		Game:     strings.TrimSpace(section.Key("game").String()),
		Category: strings.TrimSpace(section.Key("category").String()),
	}
	slog.Debug("config", "game", fc.Game, "category", fc.Category)

	if section.HasKey("columns") {
		columns, err := section.Key("columns").Int()
		if err != nil {
			return empty_response, fmt.Errorf("%w: 'columns' is not an integer: %q", ErrInvalidConfig, section.Key("columns").String())
		}
		fc.Columns = columns
		fc.HasColumns = true
	}
	return fc, nil
}

// command line overrides, `nil` when not given.
type Overrides struct {
	Game     *string
	Category *string
	Columns  *int
}

// merges the config file with the command line and checks the result.
func resolve_run_config(fc FileConfig, ov Overrides, registry GameRegistry) (RunConfig, error) {
	rc := RunConfig{
		Game:     fc.Game,
		Category: fc.Category,
		Columns:  DEFAULT_COLUMNS,
	}
	if fc.HasColumns {
		rc.Columns = fc.Columns
	}

	if ov.Game != nil {
		rc.Game = strings.TrimSpace(*ov.Game)
	}
	if ov.Category != nil {
		rc.Category = strings.TrimSpace(*ov.Category)
	}
	if ov.Columns != nil {
		rc.Columns = *ov.Columns
	}

	if rc.Category == "" {
		rc.Category = NO_CATEGORY
	}

	if rc.Game == "" {
		return rc, fmt.Errorf("%w: no game selected, set 'game' in the config file or pass --game", ErrInvalidConfig)
	}
	_, present := registry[rc.Game]
	if !present {
		return rc, fmt.Errorf("%w: selected game not found in game registry: %q", ErrInvalidConfig, rc.Game)
	}
	if rc.Columns < 1 {
		return rc, fmt.Errorf("%w: 'columns' must be a positive integer, got %d", ErrInvalidConfig, rc.Columns)
	}
	return rc, nil
}

// input locations and how to reach remote ones.
type Inputs struct {
	Client   *http.Client
	Database string
	Registry string
	Config   string
}

// everything a run needs, loaded and checked.
type Loaded struct {
	Catalog  *Catalog
	Registry GameRegistry
	Config   RunConfig
}

func load(in Inputs, ov Overrides) (Loaded, error) {
	empty_response := Loaded{}

	bl, err := read_input(in.Client, in.Database, DEFAULT_DATABASE)
	if err != nil {
		return empty_response, fmt.Errorf("could not load database %q: %w", in.Database, err)
	}
	catalog, err := parse_catalog(bl)
	if err != nil {
		return empty_response, fmt.Errorf("could not load database %q: %w", in.Database, err)
	}
	slog.Info("loaded database", "mods", catalog.Len())

	bl, err = read_input(in.Client, in.Registry, DEFAULT_REGISTRY)
	if err != nil {
		return empty_response, fmt.Errorf("could not load game registry %q: %w", in.Registry, err)
	}
	registry, err := parse_registry(bl)
	if err != nil {
		return empty_response, fmt.Errorf("could not load game registry %q: %w", in.Registry, err)
	}
	slog.Info("loaded game registry", "games", len(registry))

	bl, err = read_input(in.Client, in.Config, DEFAULT_CONFIG)
	if err != nil {
		return empty_response, fmt.Errorf("could not load config %q: %w", in.Config, err)
	}
	fc, err := parse_config(bl)
	if err != nil {
		return empty_response, fmt.Errorf("could not load config %q: %w", in.Config, err)
	}

	err = check_references(catalog, registry)
	if err != nil {
		return empty_response, fmt.Errorf("database references games missing from the registry: %w", err)
	}

	rc, err := resolve_run_config(fc, ov, registry)
	if err != nil {
		return empty_response, err
	}

	return Loaded{
		Catalog:  catalog,
		Registry: registry,
		Config:   rc,
	}, nil
}
