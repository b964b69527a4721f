package pokeapi

// The structs below are partial views of PokeAPI responses. Only the fields
// read by the battle engine and search are decoded; anything absent upstream
// decodes to its zero value.

type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NamedResourceList is the paginated list returned by /{resource}?limit=&offset=.
type NamedResourceList struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

type PokemonType struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int              `json:"base_stat"`
	Effort   int              `json:"effort"`
	Stat     NamedAPIResource `json:"stat"`
}

type PokemonRecord struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Types []PokemonType `json:"types"`
	Stats []PokemonStat `json:"stats"`
}

// TypeNames returns the type names in the order upstream lists them.
func (p *PokemonRecord) TypeNames() []string {
	out := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Type.Name != "" {
			out = append(out, t.Type.Name)
		}
	}
	return out
}

// StatMap maps stat name to base value.
func (p *PokemonRecord) StatMap() map[string]int {
	out := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		out[s.Stat.Name] = s.BaseStat
	}
	return out
}

// DamageRelations lists the types a type deals (or takes) modified damage to.
type DamageRelations struct {
	DoubleDamageTo   []NamedAPIResource `json:"double_damage_to"`
	HalfDamageTo     []NamedAPIResource `json:"half_damage_to"`
	NoDamageTo       []NamedAPIResource `json:"no_damage_to"`
	DoubleDamageFrom []NamedAPIResource `json:"double_damage_from"`
	HalfDamageFrom   []NamedAPIResource `json:"half_damage_from"`
	NoDamageFrom     []NamedAPIResource `json:"no_damage_from"`
}

// TypeRecord is the partial view of /type/{id or name}. DamageRelations is
// nil when upstream omits the section.
type TypeRecord struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	DamageRelations *DamageRelations `json:"damage_relations"`
}

// SearchResult is the output of a name search over the pokemon list.
type SearchResult struct {
	Query   string             `json:"query"`
	Matches int                `json:"matches"`
	Results []NamedAPIResource `json:"results"`
}

// Names returns the resource names.
func Names(list []NamedAPIResource) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Name)
	}
	return out
}
