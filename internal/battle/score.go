package battle

import (
	"math"
	"strconv"

	"pokemon-mcp/internal/pokeapi"
)

// Canonical stat names as PokeAPI spells them.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// statWeights is the fixed linear model. Weights sum to 1.0.
var statWeights = []struct {
	stat   string
	weight float64
}{
	{StatHP, 0.15},
	{StatAttack, 0.20},
	{StatDefense, 0.15},
	{StatSpecialAttack, 0.20},
	{StatSpecialDefense, 0.15},
	{StatSpeed, 0.15},
}

const noStatsNote = "No stats available"

// Score is the battle score of one pokemon against an opponent.
type Score struct {
	Score         float64        `json:"score"`
	Stats         map[string]int `json:"stats,omitempty"`
	Analysis      []string       `json:"analysis"`
	Effectiveness float64        `json:"effectiveness"`
}

// CalculateScore weights the six base stats, scales the sum by
// effectiveness, and attaches qualitative notes. A pokemon without stats
// scores zero. opponentTypes is accepted for symmetry with the comparison
// and does not change the result.
func CalculateScore(p *pokeapi.PokemonRecord, opponentTypes []string, effectiveness float64) Score {
	if p == nil || len(p.Stats) == 0 {
		return Score{Score: 0, Analysis: []string{noStatsNote}, Effectiveness: effectiveness}
	}
	source := p.StatMap()

	stats := make(map[string]int, len(statWeights))
	raw := 0.0
	for _, sw := range statWeights {
		v := source[sw.stat]
		stats[sw.stat] = v
		raw += float64(v) * sw.weight
	}

	return Score{
		Score:         round2(raw * effectiveness),
		Stats:         stats,
		Analysis:      analyze(stats, effectiveness),
		Effectiveness: effectiveness,
	}
}

func analyze(stats map[string]int, effectiveness float64) []string {
	notes := make([]string, 0, 5)

	mult := FormatMultiplier(effectiveness)
	switch {
	case effectiveness >= 2.0:
		notes = append(notes, "Super effective against opponent ("+mult+")")
	case effectiveness == 0:
		notes = append(notes, "No effect against opponent ("+mult+")")
	case effectiveness <= 0.5:
		notes = append(notes, "Not very effective against opponent ("+mult+")")
	default:
		notes = append(notes, "Normal effectiveness against opponent ("+mult+")")
	}

	atk, spa := stats[StatAttack], stats[StatSpecialAttack]
	switch {
	case atk > spa:
		notes = append(notes, "Physical attacker")
	case spa > atk:
		notes = append(notes, "Special attacker")
	default:
		notes = append(notes, "Balanced attacker")
	}

	if spe := stats[StatSpeed]; spe > 100 {
		notes = append(notes, "High speed - likely to move first")
	} else if spe < 50 {
		notes = append(notes, "Low speed - likely to move last")
	}
	if stats[StatHP] > 100 {
		notes = append(notes, "High HP - good survivability")
	}
	if stats[StatDefense] > 100 || stats[StatSpecialDefense] > 100 {
		notes = append(notes, "High defenses - good bulk")
	}
	return notes
}

// FormatMultiplier renders a multiplier as "x2.0", "x0.25", keeping at least
// one decimal place.
func FormatMultiplier(v float64) string {
	if v == math.Trunc(v) {
		return "x" + strconv.FormatFloat(v, 'f', 1, 64)
	}
	return "x" + strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
