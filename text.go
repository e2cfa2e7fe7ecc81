package main

import (
	"strings"
)

var flattener = strings.NewReplacer(
	`"`, "",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// plain text for display: literal quotes removed and line breaks flattened to spaces.
func text(s string) string {
	return flattener.Replace(s)
}

// a nullable field as display text, nil is an empty string.
func sanitize(s *string) string {
	if s == nil {
		return ""
	}
	return text(*s)
}

// "My Cool Mod" => "My-Cool-Mod"
// matches the heading anchors of the Markdown viewer, only spaces are replaced.
func anchorize(title string) string {
	return strings.ReplaceAll(title, " ", "-")
}

var link_text_escaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`)
var link_dest_escaper = strings.NewReplacer(`(`, `\(`, `)`, `\)`, " ", "%20")

// "Bows [Legacy]" => "Bows \[Legacy\]"
// brackets would otherwise end the link text early.
func link_text(s string) string {
	return link_text_escaper.Replace(s)
}

// escapes parentheses so a value can't end a link destination.
func link_dest(s string) string {
	return link_dest_escaper.Replace(s)
}

// a mod's categories as display text, each listed once.
func category_list(mod ModEntry) []string {
	category_list := []string{}
	for _, category := range mod.Categories {
		category_list = append(category_list, text(category))
	}
	return unique(category_list)
}

// escapes pipes so a value can't split a table cell.
func cell_text(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
