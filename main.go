package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
)

type State struct {
	CWD    string
	Client *http.Client
}

func NewState() *State {
	return &State{}
}

// -- globals

var STATE *State

const (
	DEFAULT_DATABASE = "db.json"
	DEFAULT_REGISTRY = "games.json"
	DEFAULT_CONFIG   = "config.ini"
	DEFAULT_OUTPUT   = "mods.md"
)

// parsed command line
type Args struct {
	Inputs
	Overrides
	Output  string
	Verbose bool
	Help    bool
}

func parse_args(arg_list []string) (Args, error) {
	empty_response := Args{}

	fs := pflag.NewFlagSet("mod-catalogue-markdown", pflag.ContinueOnError)
	category := fs.StringP("category", "c", "", "only list mods in this category in the category section, 'none' for no section")
	game := fs.StringP("game", "g", "", "game to render links and images for (overrides 'game' in config)")
	columns := fs.IntP("columns", "n", 0, "number of columns in image tables (overrides 'columns' in config)")
	db := fs.String("db", DEFAULT_DATABASE, "mod database, a path or URL to a .json or .zip file")
	games := fs.String("games", DEFAULT_REGISTRY, "game registry, a path or URL to a .json or .zip file")
	config := fs.String("config", DEFAULT_CONFIG, "config file, a path or URL to an .ini or .zip file")
	output := fs.StringP("out", "o", DEFAULT_OUTPUT, "path to write the Markdown document to")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: mod-catalogue-markdown [flags] [category]\n\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(arg_list)
	if errors.Is(err, pflag.ErrHelp) {
		return Args{Help: true}, nil
	}
	if err != nil {
		return empty_response, fmt.Errorf("invalid command-line arguments: %w", err)
	}

	// legacy form, a single positional argument is the category.
	positional := fs.Args()
	if len(positional) > 1 {
		return empty_response, fmt.Errorf("invalid command-line arguments: unexpected %q", positional[1:])
	}

	args := Args{
		Inputs: Inputs{
			Database: *db,
			Registry: *games,
			Config:   *config,
		},
		Output:  *output,
		Verbose: *verbose,
	}
	if fs.Changed("game") {
		args.Game = game
	}
	if fs.Changed("columns") {
		args.Columns = columns
	}
	if fs.Changed("category") {
		args.Category = category
	} else if len(positional) == 1 {
		args.Category = &positional[0]
	}
	return args, nil
}

// writes `content` to `output_path` all at once.
// the content is written to a temporary file first so a failed run never leaves a partial document.
func write_output(output_path, content string) error {
	fh, err := os.CreateTemp(filepath.Dir(output_path), "."+filepath.Base(output_path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmp_path := fh.Name()
	defer os.Remove(tmp_path) // no-op once renamed

	_, err = fh.WriteString(content)
	if err != nil {
		fh.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	err = fh.Close()
	if err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	err = os.Chmod(tmp_path, 0644)
	if err != nil {
		return fmt.Errorf("failed to set output file permissions: %w", err)
	}
	err = os.Rename(tmp_path, output_path)
	if err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// loads inputs, renders the document and writes it out.
func generate(args Args) error {
	if !path_exists(filepath.Dir(args.Output)) {
		return fmt.Errorf("could not open output %q: directory does not exist", args.Output)
	}

	loaded, err := load(args.Inputs, args.Overrides)
	if err != nil {
		return err
	}
	slog.Info("rendering", "game", loaded.Config.Game, "category", loaded.Config.Category, "columns", loaded.Config.Columns)

	content, err := render(loaded.Catalog, loaded.Registry, loaded.Config)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	err = write_output(args.Output, content)
	if err != nil {
		return fmt.Errorf("could not write output %q: %w", args.Output, err)
	}
	return nil
}

func init_state() *State {
	state := NewState()

	cwd, err := os.Getwd()
	die(err != nil, "failed to find current working directory", "error", err)
	state.CWD = cwd

	state.Client = &http.Client{Timeout: 60 * time.Second}

	return state
}

// --- bootstrap

func init() {
	if is_testing() {
		return
	}
	STATE = init_state()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))
}

func main() {
	args, err := parse_args(os.Args[1:])
	die(err != nil, "bad arguments", "error", err)
	if args.Help {
		os.Exit(0)
	}

	if args.Verbose {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug})))
	}
	slog.Debug("starting", "cwd", STATE.CWD)

	args.Client = STATE.Client
	err = generate(args)
	die(err != nil, "markdown generation failed", "error", err)

	slog.Info("markdown generation successful", "output", args.Output)
}
