package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parse_args(t *testing.T) {
	args, err := parse_args([]string{})
	require.NoError(t, err)
	assert.Equal(t, Inputs{Database: "db.json", Registry: "games.json", Config: "config.ini"}, args.Inputs)
	assert.Equal(t, Overrides{}, args.Overrides)
	assert.Equal(t, "mods.md", args.Output)

	args, err = parse_args([]string{"-c", "Armor", "--game", "skyrim", "-n", "3", "--db", "https://example.org/db.zip", "-o", "out.md", "-v"})
	require.NoError(t, err)
	assert.Equal(t, "Armor", *args.Category)
	assert.Equal(t, "skyrim", *args.Game)
	assert.Equal(t, 3, *args.Columns)
	assert.Equal(t, "https://example.org/db.zip", args.Database)
	assert.Equal(t, "out.md", args.Output)
	assert.True(t, args.Verbose)
}

func Test_parse_args__positional_category(t *testing.T) {
	args, err := parse_args([]string{"Armor"})
	require.NoError(t, err)
	assert.Equal(t, "Armor", *args.Category)

	// the flag wins
	args, err = parse_args([]string{"--category", "Weapons", "Armor"})
	require.NoError(t, err)
	assert.Equal(t, "Weapons", *args.Category)
}

func Test_parse_args__help(t *testing.T) {
	for _, given := range []string{"-h", "--help"} {
		args, err := parse_args([]string{given})
		require.NoError(t, err)
		assert.True(t, args.Help)
	}
}

func Test_parse_args__invalid(t *testing.T) {
	cases := [][]string{
		{"Armor", "Weapons"},
		{"--columns", "two"},
		{"--nope"},
	}
	for _, given := range cases {
		_, err := parse_args(given)
		assert.Error(t, err, given)
	}
}

func write_inputs(t *testing.T, dir, config string) Args {
	db := `{"Mods": {"Cloaks": {
		"description": "Adds cloaks",
		"main image": "c.png",
		"id": {"skyrim": "1234"},
		"images": {"skyrim": ["a.png", "b.png"]},
		"categories": ["Armor"]
	}}}`
	games := `{"skyrim": {"id": 110, "name": "Skyrim"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db.json"), []byte(db), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.json"), []byte(games), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"), []byte(config), 0644))
	return Args{
		Inputs: Inputs{
			Database: filepath.Join(dir, "db.json"),
			Registry: filepath.Join(dir, "games.json"),
			Config:   filepath.Join(dir, "config.ini"),
		},
		Output: filepath.Join(dir, "mods.md"),
	}
}

func Test_generate(t *testing.T) {
	dir := t.TempDir()
	args := write_inputs(t, dir, "game=skyrim\ncategory=none\ncolumns=2\n")
	require.NoError(t, generate(args))

	bl, err := os.ReadFile(args.Output)
	require.NoError(t, err)
	actual := string(bl)

	assert.True(t, strings.HasPrefix(actual, "# Skyrim\n\n## Mods\n\n### Mod master list\n\n#### Cloaks\n\nAdds cloaks\n\n"))
	assert.Contains(t, actual, "[Skyrim](https://www.nexusmods.com/skyrim/mods/1234)")
	assert.Contains(t, actual, "| Images<br>![](https://staticdelivery.nexusmods.com/mods/110/images/c.png) | ![](https://staticdelivery.nexusmods.com/mods/110/images/a.png) |\n| :---: | :---: |\n| ![](https://staticdelivery.nexusmods.com/mods/110/images/b.png) |\n")
	assert.Contains(t, actual, "Categories:\n\n+ Armor\n")
	assert.True(t, strings.HasSuffix(actual, "### Categories\n\n+ Armor\n"))

	info, err := os.Stat(args.Output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func Test_generate__overrides(t *testing.T) {
	dir := t.TempDir()
	args := write_inputs(t, dir, "category=none\n")
	game := "skyrim"
	category := "Armor"
	args.Game = &game
	args.Category = &category
	require.NoError(t, generate(args))

	bl, err := os.ReadFile(args.Output)
	require.NoError(t, err)
	assert.Contains(t, string(bl), "### Category: Armor\n\n| [Cloaks](#Cloaks) |\n")
}

func Test_generate__failures_leave_no_output(t *testing.T) {
	cases := map[string]string{
		"missing game":    "category=Armor\n",
		"bad columns":     "game=skyrim\ncolumns=lots\n",
		"zero columns":    "game=skyrim\ncolumns=0\n",
		"unknown game":    "game=oblivion\n",
		"empty game":      "game=\n",
		"negative column": "game=skyrim\ncolumns=-1\n",
	}
	for name, config := range cases {
		dir := t.TempDir()
		args := write_inputs(t, dir, config)
		err := generate(args)
		assert.Error(t, err, name)
		assert.False(t, path_exists(args.Output), name)
	}
}

func Test_generate__missing_inputs(t *testing.T) {
	for _, input := range []string{"db.json", "games.json", "config.ini"} {
		dir := t.TempDir()
		args := write_inputs(t, dir, "game=skyrim\n")
		require.NoError(t, os.Remove(filepath.Join(dir, input)))
		err := generate(args)
		assert.ErrorIs(t, err, os.ErrNotExist, input)
		assert.False(t, path_exists(args.Output), input)
	}

	dir := t.TempDir()
	args := write_inputs(t, dir, "game=skyrim\n")
	args.Output = filepath.Join(dir, "no-such-dir", "mods.md")
	assert.Error(t, generate(args))
}

func Test_unique(t *testing.T) {
	cases := map[string][]string{
		"":      nil,
		"a":     {"a"},
		"abab":  {"a", "b"},
		"bbaac": {"b", "a", "c"},
	}
	for given, expected := range cases {
		assert.Equal(t, expected, unique(strings.Split(given, "")), given)
	}
}

func Test_fold(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"none": "none",
		"None": "none",
		"NONE": "none",
		"Null": "null",
	}
	for given, expected := range cases {
		assert.Equal(t, expected, fold(given))
	}
}

func Test_elide_bom(t *testing.T) {
	cases := map[string]string{
		"\uFEFFfoo": "foo",
		"foo":       "foo",
		"\uFEFF":    "",
	}
	for given, expected := range cases {
		actual, err := elide_bom([]byte(given))
		require.NoError(t, err)
		assert.Equal(t, expected, string(actual))
	}
}
