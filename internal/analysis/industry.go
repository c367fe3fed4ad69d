// Package analysis builds the reference vocabulary and target industry used to tailor rewritten bullets.
package analysis

import "strings"

// Industry is the closed set of target industries the rewriter can tailor to.
type Industry int

// Known industries. Declaration order is the detection priority.
const (
	General Industry = iota
	Finance
	Ecommerce
	Healthcare
	SaaS
	Gaming
	Telecom
)

type industryProfile struct {
	name     string
	triggers []string
	context  string
	outcome  string
}

var profiles = map[Industry]industryProfile{
	General: {
		name:    "general",
		context: "across web and API journeys",
		outcome: "higher release reliability in real-world usage",
	},
	Finance: {
		name:     "finance",
		triggers: []string{"bank", "trading", "fintech", "loan", "credit", "payment", "card"},
		context:  "for online banking journeys",
		outcome:  "fewer failed transactions and clearer audit trails",
	},
	Ecommerce: {
		name:     "ecommerce",
		triggers: []string{"checkout", "cart", "shop", "store", "e-commerce", "retail"},
		context:  "across checkout and catalog flows",
		outcome:  "smoother checkout sessions and fewer cart drops",
	},
	Healthcare: {
		name:     "healthcare",
		triggers: []string{"hospital", "patient", "clinic", "medical", "health"},
		context:  "around patient and clinician portals",
		outcome:  "safer releases and fewer production incidents in clinical tools",
	},
	SaaS: {
		name:     "saas",
		triggers: []string{"subscription", "b2b", "multi-tenant", "tenant"},
		context:  "across B2B subscription features",
		outcome:  "more stable releases and fewer support tickets",
	},
	Gaming: {
		name:     "gaming",
		triggers: []string{"game", "gamified", "unity", "unreal", "multiplayer", "matchmaking"},
		context:  "for live gameplay and matchmaking paths",
		outcome:  "smoother live sessions with fewer crash reports",
	},
	Telecom: {
		name:     "telecom",
		triggers: []string{"telecom", "telephony", "5g", "4g", "sms", "carrier", "operator"},
		context:  "across provisioning and billing APIs",
		outcome:  "more reliable provisioning and fewer billing defects",
	},
}

// detectionOrder is the order industries are tested in; first hit wins
var detectionOrder = []Industry{Finance, Ecommerce, Healthcare, SaaS, Gaming, Telecom}

// DetectIndustry classifies text by the first industry whose trigger substring appears in it.
func DetectIndustry(text string) Industry {
	lower := strings.ToLower(text)
	for _, industry := range detectionOrder {
		for _, trigger := range profiles[industry].triggers {
			if strings.Contains(lower, trigger) {
				return industry
			}
		}
	}
	return General
}

// ParseIndustry maps a name such as "saas" back to its Industry.
func ParseIndustry(name string) (Industry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for industry, profile := range profiles {
		if profile.name == name {
			return industry, true
		}
	}
	return General, false
}

func (i Industry) profile() industryProfile {
	if p, ok := profiles[i]; ok {
		return p
	}
	return profiles[General]
}

// String returns the lowercase industry name.
func (i Industry) String() string {
	return i.profile().name
}

// Context is the clause appended to a bullet's action phrase.
func (i Industry) Context() string {
	return i.profile().context
}

// DefaultOutcome is the qualitative outcome used when a bullet has no metric.
func (i Industry) DefaultOutcome() string {
	return i.profile().outcome
}

// MarshalText encodes the industry by name.
func (i Industry) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
