package battle

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pokemon-mcp/internal/logger"
	"pokemon-mcp/internal/pokeapi"
)

// Tie is the winner reported when both scores are equal.
const Tie = "Tie"

const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// maxTypeFetches bounds concurrent type lookups. Two dual-type pokemon never
// need more than four.
const maxTypeFetches = 4

// Source is the subset of the PokeAPI client the comparator needs.
type Source interface {
	GetPokemon(ctx context.Context, idOrName string) (*pokeapi.PokemonRecord, error)
	GetType(ctx context.Context, idOrName string) (*pokeapi.TypeRecord, error)
}

// Combatant is one side of a comparison.
type Combatant struct {
	Name          string         `json:"name"`
	Types         []string       `json:"types"`
	Score         float64        `json:"score"`
	Stats         map[string]int `json:"stats"`
	Effectiveness float64        `json:"effectiveness"`
	Analysis      []string       `json:"analysis"`
}

// Prediction is the winner call for a comparison.
type Prediction struct {
	Winner     string  `json:"winner"`
	Margin     float64 `json:"margin"`
	Confidence string  `json:"confidence"`
}

// Comparison is the output of the compare_pokemon_battle tool.
type Comparison struct {
	Pokemon1   Combatant  `json:"pokemon1"`
	Pokemon2   Combatant  `json:"pokemon2"`
	Prediction Prediction `json:"battle_prediction"`
	Summary    string     `json:"summary"`
}

type Comparator struct {
	src Source
}

func NewComparator(src Source) *Comparator {
	return &Comparator{src: src}
}

// Compare fetches both pokemon and their type data and predicts a winner.
// A failed pokemon fetch aborts the comparison; a failed type fetch only
// makes that type neutral.
func (c *Comparator) Compare(ctx context.Context, name1, name2 string) (*Comparison, error) {
	p1, err := c.src.GetPokemon(ctx, name1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon 1 (%s): %w", name1, err)
	}
	p2, err := c.src.GetPokemon(ctx, name2)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon 2 (%s): %w", name2, err)
	}

	types1 := p1.TypeNames()
	types2 := p2.TypeNames()
	typeData := c.fetchTypes(ctx, distinct(types1, types2))

	eff1 := CombinedEffectiveness(types1, types2, typeData)
	eff2 := CombinedEffectiveness(types2, types1, typeData)

	side1 := combatant(p1, name1, types1, CalculateScore(p1, types2, eff1))
	side2 := combatant(p2, name2, types2, CalculateScore(p2, types1, eff2))
	pred := Predict(side1.Name, side1.Score, side2.Name, side2.Score)

	return &Comparison{
		Pokemon1:   side1,
		Pokemon2:   side2,
		Prediction: pred,
		Summary:    Summarize(side1, side2, pred),
	}, nil
}

func (c *Comparator) fetchTypes(ctx context.Context, names []string) map[string]*pokeapi.TypeRecord {
	out := make(map[string]*pokeapi.TypeRecord, len(names))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxTypeFetches)
	for _, name := range names {
		g.Go(func() error {
			t, err := c.src.GetType(ctx, name)
			if err != nil {
				logger.Warn("type fetch failed, treating as neutral", "type", name, "err", err)
				return nil
			}
			mu.Lock()
			out[name] = t
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func combatant(p *pokeapi.PokemonRecord, requested string, types []string, s Score) Combatant {
	name := p.Name
	if name == "" {
		name = pokeapi.NormalizeIdentifier(requested)
	}
	stats := s.Stats
	if stats == nil {
		stats = map[string]int{}
	}
	return Combatant{
		Name:          name,
		Types:         types,
		Score:         s.Score,
		Stats:         stats,
		Effectiveness: s.Effectiveness,
		Analysis:      s.Analysis,
	}
}

// Predict picks the higher score. Equal scores are a Tie with zero margin.
func Predict(name1 string, score1 float64, name2 string, score2 float64) Prediction {
	var pred Prediction
	switch {
	case score1 > score2:
		pred.Winner = name1
		pred.Margin = round2(math.Abs(score1 - score2))
	case score2 > score1:
		pred.Winner = name2
		pred.Margin = round2(math.Abs(score2 - score1))
	default:
		pred.Winner = Tie
	}
	pred.Confidence = ConfidenceFor(pred.Margin)
	return pred
}

// ConfidenceFor buckets a score margin.
func ConfidenceFor(margin float64) string {
	switch {
	case margin > 50:
		return ConfidenceHigh
	case margin > 20:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// MajorTypeRole reports whether either multiplier is far enough from neutral
// to dominate the matchup.
func MajorTypeRole(eff1, eff2 float64) bool {
	return eff1 >= 2.0 || eff1 <= 0.5 || eff2 >= 2.0 || eff2 <= 0.5
}

// Summarize writes the one-paragraph description of a comparison.
func Summarize(side1, side2 Combatant, pred Prediction) string {
	title := cases.Title(language.English)
	n1, n2 := title.String(side1.Name), title.String(side2.Name)
	m1, m2 := FormatMultiplier(side1.Effectiveness), FormatMultiplier(side2.Effectiveness)

	var b strings.Builder
	switch {
	case side1.Effectiveness > side2.Effectiveness:
		fmt.Fprintf(&b, "%s has the type advantage (%s vs %s).", n1, m1, m2)
	case side2.Effectiveness > side1.Effectiveness:
		fmt.Fprintf(&b, "%s has the type advantage (%s vs %s).", n2, m2, m1)
	default:
		fmt.Fprintf(&b, "Neither side has a type advantage (%s vs %s).", m1, m2)
	}
	if MajorTypeRole(side1.Effectiveness, side2.Effectiveness) {
		b.WriteString(" Type effectiveness plays a major role in this matchup.")
	} else {
		b.WriteString(" Type effectiveness plays a moderate role in this matchup.")
	}
	if pred.Winner == Tie {
		b.WriteString(" The matchup is predicted to be a tie.")
	} else {
		fmt.Fprintf(&b, " %s is predicted to win with %s confidence.", title.String(pred.Winner), pred.Confidence)
	}
	return b.String()
}

// distinct returns the union of the lists, keeping first-seen order.
func distinct(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
