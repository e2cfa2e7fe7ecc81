package main

// a supported game, keyed by its short name in the registry ("skyrim").
type Game struct {
	Key    string
	Name   string `json:"name"` // "Skyrim"
	HostID int    `json:"id"`   // 110
}

// game-key => game. loaded once, never modified.
type GameRegistry map[string]Game

// a game-key and the mod's identifier on that game's mod page.
type GameID struct {
	Game string
	ID   string // "1234", numbers are kept as written
}

// a single mod in the database.
type ModEntry struct {
	Key         string
	Description *string
	MainImage   *string
	IDList      []GameID            // document order
	ImageMap    map[string][]string // game-key => image filename fragments
	Categories  []string
}

// mods in the order they appear in the database.
// a duplicate key replaces the earlier entry's value but keeps its position.
type Catalog struct {
	key_list []string
	mod_map  map[string]ModEntry
}

func NewCatalog() *Catalog {
	return &Catalog{mod_map: map[string]ModEntry{}}
}

func (c *Catalog) Add(mod ModEntry) {
	_, present := c.mod_map[mod.Key]
	if !present {
		c.key_list = append(c.key_list, mod.Key)
	}
	c.mod_map[mod.Key] = mod
}

func (c *Catalog) Len() int {
	return len(c.key_list)
}

// returns the mods in catalog order.
func (c *Catalog) ModList() []ModEntry {
	mod_list := make([]ModEntry, 0, len(c.key_list))
	for _, key := range c.key_list {
		mod_list = append(mod_list, c.mod_map[key])
	}
	return mod_list
}

// value of `category` meaning "no filtered section".
const NO_CATEGORY = "none"

const DEFAULT_COLUMNS = 2

// the fully resolved settings for a single run.
type RunConfig struct {
	Game     string
	Category string // `NO_CATEGORY` when unset
	Columns  int
}

// returns `true` if a filtered category section should be rendered.
// "none", "None" and the legacy "null" all mean no category.
func (rc RunConfig) HasCategory() bool {
	c := fold(rc.Category)
	return c != "" && c != NO_CATEGORY && c != "null"
}
