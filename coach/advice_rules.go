package coach

// SportType identifies the discipline of a session or competition.
type SportType string

const (
	SportRunning   SportType = "course"
	SportCycling   SportType = "velo"
	SportSwimming  SportType = "natation"
	SportTrail     SportType = "trail"
	SportTriathlon SportType = "triathlon"
	SportOther     SportType = "autre"
)

// SessionType is the kind of workout.
type SessionType string

const (
	SessionRecovery   SessionType = "recuperation"
	SessionInterval   SessionType = "interval"
	SessionFractioned SessionType = "frac"
	SessionEndurance  SessionType = "endurance"
	SessionFooting    SessionType = "footing"
	SessionTempo      SessionType = "tempo"
	SessionSpecific   SessionType = "specific"
)

var validSports = map[SportType]bool{
	SportRunning: true, SportCycling: true, SportSwimming: true,
	SportTrail: true, SportTriathlon: true, SportOther: true,
}

var validSessionTypes = map[SessionType]bool{
	SessionRecovery: true, SessionInterval: true, SessionFractioned: true,
	SessionEndurance: true, SessionFooting: true, SessionTempo: true, SessionSpecific: true,
}

// Valid reports whether s is a known sport.
func (s SportType) Valid() bool { return validSports[s] }

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool { return validSessionTypes[t] }

// SessionAdvice is the before/during/after guidance attached to a session.
type SessionAdvice struct {
	Before string `json:"before"`
	During string `json:"during"`
	After  string `json:"after"`
}

// Thresholds, in minutes, used by the rule table.
const (
	isotonicDrinkAfterMin = 45
	longEnduranceAfterMin = 90
)

type adviceRule struct {
	name   string
	match  func(sport SportType, st SessionType, minutes int) bool
	advice func(minutes int) SessionAdvice
}

func fixed(a SessionAdvice) func(int) SessionAdvice {
	return func(int) SessionAdvice { return a }
}

// adviceRules is evaluated top-down; the first match wins and nothing after
// it is considered. The last rule always matches.
var adviceRules = []adviceRule{
	{
		name:  "recovery",
		match: func(_ SportType, st SessionType, _ int) bool { return st == SessionRecovery },
		advice: fixed(SessionAdvice{
			Before: "Séance légère : pas besoin de collation, hydrate-toi simplement avec un grand verre d'eau.",
			During: "De l'eau uniquement, par petites gorgées si tu as soif.",
			After:  "Recharge légère : un fruit ou un yaourt et un repas normal au moment habituel.",
		}),
	},
	{
		name: "interval",
		match: func(_ SportType, st SessionType, _ int) bool {
			return st == SessionInterval || st == SessionFractioned
		},
		advice: func(minutes int) SessionAdvice {
			a := SessionAdvice{
				Before: "Collation légère 1h avant (banane ou quelques dattes) pour avoir du glucose disponible sans lourdeur digestive.",
				After:  "Repas de récupération complet dès la fin : glucides pour refaire le glycogène et protéines pour réparer les fibres.",
			}
			if minutes > isotonicDrinkAfterMin {
				a.During = "Boisson isotonique par petites gorgées toutes les 15 minutes pour maintenir l'intensité."
			} else {
				a.During = "De l'eau, et un bain de bouche avec une boisson sucrée avant les dernières répétitions."
			}
			return a
		},
	},
	{
		name: "long-endurance",
		match: func(_ SportType, st SessionType, minutes int) bool {
			return st == SessionEndurance && minutes > longEnduranceAfterMin
		},
		advice: fixed(SessionAdvice{
			Before: "Charge glucidique la veille et repas riche en glucides complexes 3h avant (riz, pâtes, avoine).",
			During: "Apporte 30 à 60 g de glucides par heure (boisson, gel ou fruits secs) et bois régulièrement.",
			After:  "Shake de récupération glucides + protéines dans les 30 minutes, puis un vrai repas.",
		}),
	},
	{
		name:  "strength",
		match: func(_ SportType, st SessionType, _ int) bool { return st == SessionSpecific },
		advice: fixed(SessionAdvice{
			Before: "Repas riche en protéines 2 à 3h avant (œufs, poulet, fromage blanc) avec un féculent.",
			During: "Hydratation régulière : quelques gorgées d'eau entre chaque série.",
			After:  "Fenêtre anabolique : vise 20 à 30 g de protéines dans les 30 minutes qui suivent.",
		}),
	},
	{
		name:  "default",
		match: func(SportType, SessionType, int) bool { return true },
		advice: fixed(SessionAdvice{
			Before: "Hydrate-toi bien dans les heures qui précèdent la séance.",
			During: "De l'eau à volonté, environ 150 ml toutes les 15 minutes.",
			After:  "Un repas équilibré : légumes, féculents et une source de protéines.",
		}),
	},
}

func matchRule(sport SportType, st SessionType, minutes int) adviceRule {
	for _, r := range adviceRules {
		if r.match(sport, st, minutes) {
			return r
		}
	}
	// unreachable: the default rule matches everything
	return adviceRules[len(adviceRules)-1]
}

// GenerateAdvice picks the nutrition-timing advice for a session. It never
// fails: unknown sports and types fall through to the default rule.
func GenerateAdvice(sport SportType, st SessionType, durationMinutes int) SessionAdvice {
	return matchRule(sport, st, durationMinutes).advice(durationMinutes)
}

// MatchAdviceRule returns the name of the rule GenerateAdvice would use.
func MatchAdviceRule(sport SportType, st SessionType, durationMinutes int) string {
	return matchRule(sport, st, durationMinutes).name
}
