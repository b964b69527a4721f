package battle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"pokemon-mcp/internal/pokeapi"
)

// fakeSource serves canned records and records every lookup.
type fakeSource struct {
	mu       sync.Mutex
	pokemon  map[string]*pokeapi.PokemonRecord
	types    map[string]*pokeapi.TypeRecord
	failType map[string]bool
	calls    []string
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) GetPokemon(ctx context.Context, name string) (*pokeapi.PokemonRecord, error) {
	f.record("pokemon/" + name)
	p, ok := f.pokemon[pokeapi.NormalizeIdentifier(name)]
	if !ok {
		return nil, errors.New("HTTP error: GET /pokemon/" + name + ": 404 Not Found")
	}
	return p, nil
}

func (f *fakeSource) GetType(ctx context.Context, name string) (*pokeapi.TypeRecord, error) {
	f.record("type/" + name)
	if f.failType[name] {
		return nil, errors.New("HTTP error: GET /type/" + name + ": 500 Internal Server Error")
	}
	t, ok := f.types[name]
	if !ok {
		return nil, errors.New("HTTP error: GET /type/" + name + ": 404 Not Found")
	}
	return t, nil
}

func (f *fakeSource) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pokemon: map[string]*pokeapi.PokemonRecord{
			"pikachu":   makePokemon("pikachu", []string{"electric"}, 35, 55, 40, 50, 50, 90),
			"gyarados":  makePokemon("gyarados", []string{"water", "flying"}, 95, 125, 79, 60, 100, 81),
			"geodude":   makePokemon("geodude", []string{"rock", "ground"}, 40, 80, 100, 30, 30, 20),
			"pikachu-2": makePokemon("pikachu-2", []string{"electric"}, 35, 55, 40, 50, 50, 90),
		},
		types: map[string]*pokeapi.TypeRecord{
			"electric": electricType(),
			"water": {Name: "water", DamageRelations: &pokeapi.DamageRelations{
				DoubleDamageTo: named("ground", "rock", "fire"),
				HalfDamageTo:   named("water", "grass", "dragon"),
			}},
			"flying": {Name: "flying", DamageRelations: &pokeapi.DamageRelations{
				DoubleDamageTo: named("grass", "fighting", "bug"),
				HalfDamageTo:   named("electric", "rock", "steel"),
			}},
			"rock": {Name: "rock", DamageRelations: &pokeapi.DamageRelations{
				DoubleDamageTo: named("fire", "ice", "flying", "bug"),
				HalfDamageTo:   named("fighting", "ground", "steel"),
			}},
			"ground": {Name: "ground", DamageRelations: &pokeapi.DamageRelations{
				DoubleDamageTo: named("fire", "electric", "poison", "rock", "steel"),
				HalfDamageTo:   named("grass", "bug"),
				NoDamageTo:     named("flying"),
			}},
		},
		failType: map[string]bool{},
	}
}

func TestCompare_PikachuVsGyarados(t *testing.T) {
	src := newFakeSource()
	res, err := NewComparator(src).Compare(context.Background(), "Pikachu", "gyarados")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// electric vs water/flying = 2 * 2
	if res.Pokemon1.Effectiveness != 4.0 {
		t.Errorf("pikachu effectiveness = %v, want 4", res.Pokemon1.Effectiveness)
	}
	// water vs electric = 1, flying vs electric = 0.5
	if res.Pokemon2.Effectiveness != 0.5 {
		t.Errorf("gyarados effectiveness = %v, want 0.5", res.Pokemon2.Effectiveness)
	}
	if res.Pokemon1.Score != 213.0 {
		t.Errorf("pikachu score = %v, want 213", res.Pokemon1.Score)
	}
	// gyarados raw = 14.25+25+11.85+12+15+12.15 = 90.25; x0.5 = 45.125
	if res.Pokemon2.Score != 45.13 {
		t.Errorf("gyarados score = %v, want 45.13", res.Pokemon2.Score)
	}
	if res.Prediction.Winner != "pikachu" {
		t.Errorf("winner = %s", res.Prediction.Winner)
	}
	if res.Prediction.Margin != 167.87 {
		t.Errorf("margin = %v, want 167.87", res.Prediction.Margin)
	}
	if res.Prediction.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s", res.Prediction.Confidence)
	}
	if got := res.Pokemon2.Types; len(got) != 2 || got[0] != "water" || got[1] != "flying" {
		t.Errorf("gyarados types = %v", got)
	}
	if !strings.HasPrefix(res.Summary, "Pikachu has the type advantage (x4.0 vs x0.5).") {
		t.Errorf("summary = %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "major role") {
		t.Errorf("summary should call type role major: %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "Pikachu is predicted to win with High confidence.") {
		t.Errorf("summary = %q", res.Summary)
	}
	// One lookup per distinct type across both sides.
	if n := src.callCount("type/"); n != 3 {
		t.Errorf("type lookups = %d, want 3", n)
	}
}

func TestCompare_ImmunityZeroesScore(t *testing.T) {
	src := newFakeSource()
	res, err := NewComparator(src).Compare(context.Background(), "pikachu", "geodude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pokemon1.Effectiveness != 0 || res.Pokemon1.Score != 0 {
		t.Errorf("pikachu vs ground: eff=%v score=%v, want 0", res.Pokemon1.Effectiveness, res.Pokemon1.Score)
	}
	if res.Pokemon1.Analysis[0] != "No effect against opponent (x0.0)" {
		t.Errorf("analysis = %v", res.Pokemon1.Analysis)
	}
	// rock vs electric = 1, ground vs electric = 2
	if res.Pokemon2.Effectiveness != 2.0 {
		t.Errorf("geodude effectiveness = %v, want 2", res.Pokemon2.Effectiveness)
	}
	if res.Prediction.Winner != "geodude" {
		t.Errorf("winner = %s", res.Prediction.Winner)
	}
}

func TestCompare_Tie(t *testing.T) {
	src := newFakeSource()
	res, err := NewComparator(src).Compare(context.Background(), "pikachu", "pikachu-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Prediction.Winner != Tie {
		t.Errorf("winner = %s, want Tie", res.Prediction.Winner)
	}
	if res.Prediction.Margin != 0 {
		t.Errorf("margin = %v, want 0", res.Prediction.Margin)
	}
	if res.Prediction.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, want Low", res.Prediction.Confidence)
	}
	// electric vs electric = 0.5 on both sides.
	if !strings.HasPrefix(res.Summary, "Neither side has a type advantage (x0.5 vs x0.5).") {
		t.Errorf("summary = %q", res.Summary)
	}
	if !strings.HasSuffix(res.Summary, "The matchup is predicted to be a tie.") {
		t.Errorf("summary = %q", res.Summary)
	}
	if n := src.callCount("type/"); n != 1 {
		t.Errorf("type lookups = %d, want 1 (distinct)", n)
	}
}

func TestCompare_FailsFastOnFirstPokemon(t *testing.T) {
	src := newFakeSource()
	_, err := NewComparator(src).Compare(context.Background(), "missingno", "pikachu")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pokemon 1 (missingno)") {
		t.Errorf("error should name side 1: %v", err)
	}
	if len(src.calls) != 1 {
		t.Errorf("calls = %v, want only the first pokemon lookup", src.calls)
	}
}

func TestCompare_FailsOnSecondPokemon(t *testing.T) {
	src := newFakeSource()
	_, err := NewComparator(src).Compare(context.Background(), "pikachu", "agumon")
	if err == nil || !strings.Contains(err.Error(), "pokemon 2 (agumon)") {
		t.Fatalf("error should name side 2: %v", err)
	}
	if n := src.callCount("type/"); n != 0 {
		t.Errorf("type lookups = %d, want 0", n)
	}
}

func TestCompare_TypeFetchFailureIsNeutral(t *testing.T) {
	src := newFakeSource()
	src.failType["electric"] = true

	res, err := NewComparator(src).Compare(context.Background(), "pikachu", "gyarados")
	if err != nil {
		t.Fatalf("type failure must not fail the comparison: %v", err)
	}
	if res.Pokemon1.Effectiveness != 1.0 {
		t.Errorf("pikachu effectiveness = %v, want neutral 1.0", res.Pokemon1.Effectiveness)
	}
	if res.Pokemon2.Effectiveness != 0.5 {
		t.Errorf("gyarados effectiveness = %v, want 0.5", res.Pokemon2.Effectiveness)
	}
}

func TestCompare_ModerateRole(t *testing.T) {
	src := newFakeSource()
	src.pokemon["eevee"] = makePokemon("eevee", []string{"normal"}, 55, 55, 50, 45, 65, 55)
	src.pokemon["meowth"] = makePokemon("meowth", []string{"normal"}, 40, 45, 35, 40, 40, 90)
	src.types["normal"] = &pokeapi.TypeRecord{Name: "normal", DamageRelations: &pokeapi.DamageRelations{
		HalfDamageTo: named("rock", "steel"),
		NoDamageTo:   named("ghost"),
	}}

	res, err := NewComparator(src).Compare(context.Background(), "eevee", "meowth")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "moderate role") {
		t.Errorf("summary = %q", res.Summary)
	}
	// eevee raw = 8.25+11+7.5+9+9.75+8.25 = 53.75; meowth = 6+9+5.25+8+6+13.5 = 47.75
	if res.Prediction.Winner != "eevee" || res.Prediction.Margin != 6.0 {
		t.Errorf("prediction = %+v", res.Prediction)
	}
	if res.Prediction.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s", res.Prediction.Confidence)
	}
}

func TestCompare_NoStatsSide(t *testing.T) {
	src := newFakeSource()
	src.pokemon["blank"] = &pokeapi.PokemonRecord{Name: "blank"}

	res, err := NewComparator(src).Compare(context.Background(), "blank", "pikachu")
	if err != nil {
		t.Fatal(err)
	}
	if res.Pokemon1.Score != 0 || res.Pokemon1.Analysis[0] != "No stats available" {
		t.Errorf("blank side = %+v", res.Pokemon1)
	}
	if res.Pokemon1.Stats == nil {
		t.Error("stats should render as an empty object, not null")
	}
	if res.Prediction.Winner != "pikachu" {
		t.Errorf("winner = %s", res.Prediction.Winner)
	}
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		margin float64
		want   string
	}{
		{0, ConfidenceLow},
		{20, ConfidenceLow},
		{20.01, ConfidenceMedium},
		{50, ConfidenceMedium},
		{50.01, ConfidenceHigh},
		{300, ConfidenceHigh},
	}
	for _, tt := range tests {
		if got := ConfidenceFor(tt.margin); got != tt.want {
			t.Errorf("ConfidenceFor(%v) = %s, want %s", tt.margin, got, tt.want)
		}
	}
}

func TestPredict(t *testing.T) {
	p := Predict("a", 80.5, "b", 100.25)
	if p.Winner != "b" || p.Margin != 19.75 || p.Confidence != ConfidenceLow {
		t.Errorf("prediction = %+v", p)
	}
	p = Predict("a", 90, "b", 30)
	if p.Winner != "a" || p.Margin != 60 || p.Confidence != ConfidenceHigh {
		t.Errorf("prediction = %+v", p)
	}
	p = Predict("a", 42, "b", 42)
	if p.Winner != Tie || p.Margin != 0 || p.Confidence != ConfidenceLow {
		t.Errorf("prediction = %+v", p)
	}
}

func TestMajorTypeRole(t *testing.T) {
	tests := []struct {
		e1, e2 float64
		want   bool
	}{
		{1, 1, false},
		{2, 1, true},
		{1, 0.5, true},
		{0, 1, true},
		{1.5, 0.75, false},
	}
	for _, tt := range tests {
		if got := MajorTypeRole(tt.e1, tt.e2); got != tt.want {
			t.Errorf("MajorTypeRole(%v, %v) = %v", tt.e1, tt.e2, got)
		}
	}
}
