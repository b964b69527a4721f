package battle

import "pokemon-mcp/internal/pokeapi"

// Effectiveness returns the damage multiplier of attackingType against a
// defender holding defendingTypes, using typeData (the attacking type's
// record). Missing damage relations count as neutral.
//
// Each defending type contributes one factor: 0 if the attacker deals no
// damage to it, else 2 if double, else 0.5 if half, else 1. A type listed in
// several sets resolves in that order.
func Effectiveness(attackingType string, defendingTypes []string, typeData *pokeapi.TypeRecord) float64 {
	if typeData == nil || typeData.DamageRelations == nil {
		return 1.0
	}
	rel := typeData.DamageRelations
	double := nameSet(rel.DoubleDamageTo)
	half := nameSet(rel.HalfDamageTo)
	none := nameSet(rel.NoDamageTo)

	multiplier := 1.0
	for _, def := range defendingTypes {
		switch {
		case none[def]:
			multiplier *= 0.0
		case double[def]:
			multiplier *= 2.0
		case half[def]:
			multiplier *= 0.5
		}
	}
	return multiplier
}

// CombinedEffectiveness multiplies Effectiveness over every attacking type.
// Attacking types with no entry in typeData contribute 1.0.
func CombinedEffectiveness(attackingTypes []string, defendingTypes []string, typeData map[string]*pokeapi.TypeRecord) float64 {
	total := 1.0
	for _, atk := range attackingTypes {
		total *= Effectiveness(atk, defendingTypes, typeData[atk])
	}
	return total
}

func nameSet(list []pokeapi.NamedAPIResource) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, r := range list {
		out[r.Name] = true
	}
	return out
}
