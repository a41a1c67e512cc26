package services

import "github.com/petopia/petopia/models"

// InteractionType identifies which pet attribute an interaction raises.
type InteractionType string

const (
	InteractionFeed InteractionType = "feed"
	InteractionBath InteractionType = "bath"
	InteractionPlay InteractionType = "play"
	InteractionRest InteractionType = "rest"
)

// AttributeMax is the upper clamp for every pet attribute.
const AttributeMax = 100

// PetRules holds the tunable constants of the attribute state machine.
type PetRules struct {
	// InteractionGain is added to the targeted attribute per interaction.
	InteractionGain int
	// PenaltyThreshold: hunger/cleanliness/stamina below this each cost
	// PenaltyAmount health. Penalties are additive across causes.
	PenaltyThreshold int
	PenaltyAmount    int
}

// DecayAmounts is how much each attribute drops in one daily decay pass.
type DecayAmounts struct {
	Hunger      int
	Mood        int
	Stamina     int
	Cleanliness int
}

// InteractionOutcome reports what a single interaction changed.
type InteractionOutcome struct {
	Attribute      string `json:"attribute"`
	ValueBefore    int    `json:"value_before"`
	ValueAfter     int    `json:"value_after"`
	HealthRestored bool   `json:"health_restored"`
	HealthPenalty  int    `json:"health_penalty"`
	HealthAfter    int    `json:"health_after"`
}

// CanInteract is the fitness predicate: the pet accepts interactions only
// while health and all four non-health attributes are above zero.
func CanInteract(p *models.Pet) bool {
	return p.Health > 0 && p.Hunger > 0 && p.Mood > 0 && p.Stamina > 0 && p.Cleanliness > 0
}

// ApplyInteraction runs one interaction through the state machine, mutating
// the pet in place. It raises exactly one attribute, then evaluates the
// health-restore rule (all four non-health attributes at 100 sets health to
// 100) and, only if restore did not trigger, the health-penalty rule.
func ApplyInteraction(p *models.Pet, t InteractionType, rules PetRules) (InteractionOutcome, error) {
	if !CanInteract(p) {
		return InteractionOutcome{}, ErrPetUnfit
	}

	var target *int
	var name string
	switch t {
	case InteractionFeed:
		target, name = &p.Hunger, "hunger"
	case InteractionBath:
		target, name = &p.Cleanliness, "cleanliness"
	case InteractionPlay:
		target, name = &p.Mood, "mood"
	case InteractionRest:
		target, name = &p.Stamina, "stamina"
	default:
		return InteractionOutcome{}, ErrUnknownInteraction
	}

	out := InteractionOutcome{Attribute: name, ValueBefore: *target}
	*target = clampAttr(*target + rules.InteractionGain)
	out.ValueAfter = *target

	if p.Hunger == AttributeMax && p.Mood == AttributeMax &&
		p.Stamina == AttributeMax && p.Cleanliness == AttributeMax {
		p.Health = AttributeMax
		out.HealthRestored = true
	} else {
		out.HealthPenalty = applyHealthPenalty(p, rules)
	}
	out.HealthAfter = p.Health

	return out, nil
}

// applyHealthPenalty subtracts PenaltyAmount health for each of hunger,
// cleanliness and stamina below the threshold. Each cause contributes
// independently, so all three low at once cost triple.
func applyHealthPenalty(p *models.Pet, rules PetRules) int {
	penalty := 0
	if p.Hunger < rules.PenaltyThreshold {
		penalty += rules.PenaltyAmount
	}
	if p.Cleanliness < rules.PenaltyThreshold {
		penalty += rules.PenaltyAmount
	}
	if p.Stamina < rules.PenaltyThreshold {
		penalty += rules.PenaltyAmount
	}
	if penalty > 0 {
		p.Health = clampAttr(p.Health - penalty)
	}
	return penalty
}

// ApplyDecay runs one daily decay pass: each attribute drops by its configured
// amount (clamped at 0), after which the health-penalty rule is evaluated.
func ApplyDecay(p *models.Pet, d DecayAmounts, rules PetRules) {
	p.Hunger = clampAttr(p.Hunger - d.Hunger)
	p.Mood = clampAttr(p.Mood - d.Mood)
	p.Stamina = clampAttr(p.Stamina - d.Stamina)
	p.Cleanliness = clampAttr(p.Cleanliness - d.Cleanliness)
	applyHealthPenalty(p, rules)
}

func clampAttr(v int) int {
	if v < 0 {
		return 0
	}
	if v > AttributeMax {
		return AttributeMax
	}
	return v
}
