package main

import (
	"fmt"
)

type LinkKind int

const (
	ModLink LinkKind = iota
	ImageHost
)

func (k LinkKind) String() string {
	switch k {
	case ModLink:
		return "mod link"
	case ImageHost:
		return "image host"
	}
	return fmt.Sprintf("LinkKind(%d)", int(k))
}

var MOD_URL = "https://www.nexusmods.com/%s/mods/"
var IMAGE_URL = "https://staticdelivery.nexusmods.com/mods/%d/images/"

// error returned when a game is referenced that isn't in the registry.
type UnknownGameError struct {
	Game string
	Kind LinkKind
}

func (e UnknownGameError) Error() string {
	return fmt.Sprintf("cannot resolve %s, game not found in registry: %q", e.Kind, e.Game)
}

type LinkResolver struct {
	registry GameRegistry
}

func NewLinkResolver(registry GameRegistry) LinkResolver {
	return LinkResolver{registry: registry}
}

func (lr LinkResolver) base(game string, kind LinkKind) (string, error) {
	g, present := lr.registry[game]
	if !present {
		return "", UnknownGameError{Game: game, Kind: kind}
	}
	switch kind {
	case ModLink:
		return fmt.Sprintf(MOD_URL, game), nil
	case ImageHost:
		return fmt.Sprintf(IMAGE_URL, g.HostID), nil
	}
	panic("programming error, unhandled link kind: " + kind.String())
}

// "skyrim" => "https://www.nexusmods.com/skyrim/mods/"
// a mod's page is this plus the mod's id for the game.
func (lr LinkResolver) ModLink(game string) (string, error) {
	return lr.base(game, ModLink)
}

// "skyrim" => "https://staticdelivery.nexusmods.com/mods/110/images/"
// an image is this plus the image filename.
func (lr LinkResolver) ImageHost(game string) (string, error) {
	return lr.base(game, ImageHost)
}
