package pokeapi

import (
	"errors"
	"fmt"
	"strings"
)

// Resource is one of the upstream collections served under /api/v2/{resource}.
type Resource string

const (
	Pokemon        Resource = "pokemon"
	Ability        Resource = "ability"
	EggGroup       Resource = "egg-group"
	Gender         Resource = "gender"
	GrowthRate     Resource = "growth-rate"
	Nature         Resource = "nature"
	PokeathlonStat Resource = "pokeathlon-stat"
	PokemonColor   Resource = "pokemon-color"
	PokemonForm    Resource = "pokemon-form"
	PokemonHabitat Resource = "pokemon-habitat"
	PokemonShape   Resource = "pokemon-shape"
	PokemonSpecies Resource = "pokemon-species"
	Type           Resource = "type"
)

var ErrUnknownResource = errors.New("unknown resource")

var resources = []Resource{
	Pokemon,
	Ability,
	EggGroup,
	Gender,
	GrowthRate,
	Nature,
	PokeathlonStat,
	PokemonColor,
	PokemonForm,
	PokemonHabitat,
	PokemonShape,
	PokemonSpecies,
	Type,
}

// Resources returns every known resource in a stable order.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// ParseResource accepts the path segment ("egg-group") or its snake_case
// spelling ("egg_group").
func ParseResource(s string) (Resource, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, r := range resources {
		if string(r) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// Valid reports whether r is one of the known resources.
func (r Resource) Valid() bool {
	for _, known := range resources {
		if r == known {
			return true
		}
	}
	return false
}

// ToolSuffix is the snake_case form used in tool names ("egg_group").
func (r Resource) ToolSuffix() string {
	return strings.ReplaceAll(string(r), "-", "_")
}

func (r Resource) String() string {
	return string(r)
}
