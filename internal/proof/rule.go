package proof

// RuleTag identifies the justification a proof line carries. The set is
// closed; display labels belong to the renderer, not here.
type RuleTag int

const (
	RuleGoal RuleTag = iota
	RulePremise
	RuleAssumption
	RuleReiteration
	RuleAndIntro
	RuleAndElim
	RuleOrIntro
	RuleOrElim
	RuleImpliesIntro
	RuleImpliesElim
	RuleNotIntro
	RuleNotElim
	RuleIffIntro
	RuleIffElim
	RuleExplosion
)

var ruleTagNames = map[RuleTag]string{
	RuleGoal:         "goal",
	RulePremise:      "premise",
	RuleAssumption:   "assumption",
	RuleReiteration:  "reiteration",
	RuleAndIntro:     "and_intro",
	RuleAndElim:      "and_elim",
	RuleOrIntro:      "or_intro",
	RuleOrElim:       "or_elim",
	RuleImpliesIntro: "implies_intro",
	RuleImpliesElim:  "implies_elim",
	RuleNotIntro:     "not_intro",
	RuleNotElim:      "not_elim",
	RuleIffIntro:     "iff_intro",
	RuleIffElim:      "iff_elim",
	RuleExplosion:    "explosion",
}

// String returns the stable lowercase name used in snapshots and logs.
func (r RuleTag) String() string {
	if name, ok := ruleTagNames[r]; ok {
		return name
	}
	return "unknown"
}

func ruleTagFromName(name string) (RuleTag, bool) {
	for tag, n := range ruleTagNames {
		if n == name {
			return tag, true
		}
	}
	return 0, false
}

// Status represents the lifecycle state of a proof.
type Status int

const (
	StatusOpen Status = iota
	StatusComplete
)

// String returns "open" or "complete".
func (s Status) String() string {
	if s == StatusComplete {
		return "complete"
	}
	return "open"
}
