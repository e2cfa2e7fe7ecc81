package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// everything needed to render a document.
// built fresh for each run, the category index is filled while the master list is written.
type Document struct {
	catalog  *Catalog
	registry GameRegistry
	config   RunConfig
	resolver LinkResolver
	index    *CategoryIndex

	image_base string
}

func NewDocument(catalog *Catalog, registry GameRegistry, config RunConfig) (*Document, error) {
	if config.Columns < 1 {
		return nil, fmt.Errorf("column count must be a positive integer, got %d", config.Columns)
	}
	resolver := NewLinkResolver(registry)
	image_base, err := resolver.ImageHost(config.Game)
	if err != nil {
		return nil, err
	}
	return &Document{
		catalog:    catalog,
		registry:   registry,
		config:     config,
		resolver:   resolver,
		index:      NewCategoryIndex(),
		image_base: image_base,
	}, nil
}

// "![](https://staticdelivery.nexusmods.com/mods/110/images/foo.png)"
func (d *Document) image(filename string) string {
	return "![](" + cell_text(d.image_base+text(filename)) + ")"
}

// a table of links to every mod in the selected category, with their main images underneath.
func (d *Document) write_category_section(b *strings.Builder) {
	category := text(d.config.Category)
	b.WriteString("### Category: " + category + "\n\n")

	match_list := []ModEntry{}
	for _, mod := range d.catalog.ModList() {
		if slices.Contains(category_list(mod), category) {
			match_list = append(match_list, mod)
		}
	}
	slog.Debug("mods in category", "category", category, "num", len(match_list))

	for _, group := range layout_grid(match_list, d.config.Columns) {
		link_row := []string{}
		image_row := []string{}
		for _, mod := range group {
			link_row = append(link_row, fmt.Sprintf("[%s](#%s)", cell_text(link_text(mod.Key)), cell_text(link_dest(anchorize(mod.Key)))))
			if mod.MainImage == nil {
				image_row = append(image_row, "")
			} else {
				image_row = append(image_row, d.image(*mod.MainImage))
			}
		}
		write_table(b, [][]string{link_row, image_row})
		b.WriteString("\n")
	}
}

// the "Images" label and main image, then every image for the selected game.
func (d *Document) gallery_cells(mod ModEntry) []string {
	first := "Images"
	if mod.MainImage != nil {
		first += "<br>" + d.image(*mod.MainImage)
	}
	cells := []string{first}
	for _, filename := range mod.ImageMap[d.config.Game] {
		cells = append(cells, d.image(filename))
	}
	return cells
}

func (d *Document) write_mod(b *strings.Builder, mod ModEntry) error {
	b.WriteString("\n#### " + mod.Key + "\n\n")

	description := sanitize(mod.Description)
	if description != "" {
		b.WriteString(description + "\n\n")
	}

	for _, gid := range mod.IDList {
		base, err := d.resolver.ModLink(gid.Game)
		if err != nil {
			return fmt.Errorf("failed to render mod %q: %w", mod.Key, err)
		}
		b.WriteString(fmt.Sprintf("[%s](%s%s)\n\n", link_text(d.registry[gid.Game].Name), base, link_dest(text(gid.ID))))
	}

	write_table(b, layout_grid(d.gallery_cells(mod), d.config.Columns))

	b.WriteString("\nCategories:\n\n")
	for _, category := range category_list(mod) {
		b.WriteString("+ " + category + "\n")
		d.index.Record(category)
	}
	return nil
}

// renders the whole document.
// sections: the selected category (if any), every mod, every category seen.
func (d *Document) Render() (string, error) {
	b := &strings.Builder{}

	b.WriteString("# " + d.registry[d.config.Game].Name + "\n\n")
	b.WriteString("## Mods\n\n")

	if d.config.HasCategory() {
		d.write_category_section(b)
	}

	b.WriteString("### Mod master list\n")
	for _, mod := range d.catalog.ModList() {
		err := d.write_mod(b, mod)
		if err != nil {
			return "", err
		}
	}

	b.WriteString("\n### Categories\n\n")
	for _, category := range d.index.Snapshot() {
		b.WriteString("+ " + category + "\n")
	}

	return b.String(), nil
}

// convenience, builds a `Document` and renders it.
func render(catalog *Catalog, registry GameRegistry, config RunConfig) (string, error) {
	doc, err := NewDocument(catalog, registry, config)
	if err != nil {
		return "", err
	}
	return doc.Render()
}
