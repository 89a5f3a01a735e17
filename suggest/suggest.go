/*
Package suggest defines the boundary for assignment suggestions.

PURPOSE:
  A Suggester proposes a person for each role on a service date. The
  engine treats suggesters as untrusted: whatever they return is
  validated against the known roles and people, and nothing is written
  until an admin accepts a proposal through the normal assignment path.

IMPLEMENTATIONS:
  Rotation: deterministic least-recently-served rotation, always
  available. An LLM-backed suggester can satisfy the same interface;
  BuildPrompt renders a Request into a prompt for one.
*/
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/inservice/roster-engine/roster"
)

// HistoryDays is how far back suggestion requests look for rotation
// fairness.
const HistoryDays = 90

// RoleSlot is one role to fill on the target date.
type RoleSlot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonAvailability is one candidate with eligibility and availability
// on the target date.
type PersonAvailability struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FillableRoleIDs []string `json:"fillable_role_ids,omitempty"`
	Unavailable     bool     `json:"unavailable,omitempty"`
}

// HistoryEntry is one past assignment, for rotation fairness.
type HistoryEntry struct {
	Date     string `json:"date"`
	RoleID   string `json:"role_id"`
	PersonID string `json:"person_id"`
}

// Request carries everything a suggester may consider.
type Request struct {
	Date    roster.Date          `json:"date"`
	Roles   []RoleSlot           `json:"roles"`
	People  []PersonAvailability `json:"people"`
	History []HistoryEntry       `json:"history,omitempty"`
}

// Suggestion maps role ID to the proposed person ID. Roles the suggester
// could not fill are absent.
type Suggestion map[string]string

// Suggester proposes a lineup for one service date.
type Suggester interface {
	Suggest(ctx context.Context, req *Request) (Suggestion, error)
}

// Validate drops proposals for unknown roles, unknown people, people
// marked unavailable, and people not eligible for the proposed role.
// Suggesters are advisory; a bad proposal is filtered, not an error.
func (s Suggestion) Validate(req *Request) Suggestion {
	people := make(map[string]PersonAvailability, len(req.People))
	for _, p := range req.People {
		people[p.ID] = p
	}
	roles := make(map[string]bool, len(req.Roles))
	for _, r := range req.Roles {
		roles[r.ID] = true
	}

	out := make(Suggestion)
	for roleID, personID := range s {
		if !roles[roleID] {
			continue
		}
		p, ok := people[personID]
		if !ok || p.Unavailable {
			continue
		}
		if len(p.FillableRoleIDs) > 0 {
			eligible := false
			for _, rid := range p.FillableRoleIDs {
				if rid == roleID {
					eligible = true
					break
				}
			}
			if !eligible {
				continue
			}
		}
		out[roleID] = personID
	}
	return out
}

// ==== ROTATION SUGGESTER ====

// Rotation proposes, for each role, the eligible available person who
// served that role least recently. Deterministic: ties break by name.
type Rotation struct{}

func (Rotation) Suggest(_ context.Context, req *Request) (Suggestion, error) {
	// lastServed[roleID][personID] = most recent date string
	lastServed := make(map[string]map[string]string)
	for _, h := range req.History {
		byPerson := lastServed[h.RoleID]
		if byPerson == nil {
			byPerson = make(map[string]string)
			lastServed[h.RoleID] = byPerson
		}
		if h.Date > byPerson[h.PersonID] {
			byPerson[h.PersonID] = h.Date
		}
	}

	taken := make(map[string]bool)
	out := make(Suggestion)
	for _, role := range req.Roles {
		candidates := make([]PersonAvailability, 0, len(req.People))
		for _, p := range req.People {
			if p.Unavailable || taken[p.ID] {
				continue
			}
			if len(p.FillableRoleIDs) > 0 && !contains(p.FillableRoleIDs, role.ID) {
				continue
			}
			candidates = append(candidates, p)
		}
		if len(candidates) == 0 {
			continue
		}
		sort.Slice(candidates, func(i, j int) bool {
			di := lastServed[role.ID][candidates[i].ID]
			dj := lastServed[role.ID][candidates[j].ID]
			if di != dj {
				return di < dj // never or longest-ago served first
			}
			return candidates[i].Name < candidates[j].Name
		})
		out[role.ID] = candidates[0].ID
		taken[candidates[0].ID] = true
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ==== PROMPT RENDERING ====

var promptTmpl = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(strings.TrimSpace(`
Propose one person per role for the church service on {{.Date}}.

Roles to fill:
{{range .Roles}}- {{.ID}}: {{.Name}}
{{end}}
People (a person with no listed roles can serve any role; skip anyone unavailable):
{{range .People}}- {{.ID}}: {{.Name}}{{if .FillableRoleIDs}} (roles: {{join .FillableRoleIDs ", "}}){{end}}{{if .Unavailable}} [UNAVAILABLE]{{end}}
{{end}}{{if .History}}
Recent assignments (prefer people who served least recently):
{{range .History}}- {{.Date}}: {{.RoleID}} = {{.PersonID}}
{{end}}{{end}}
Respond with one line per role in the form "role_id: person_id". Leave out
roles you cannot fill. Do not invent IDs.
`)))

// BuildPrompt renders the request as a prompt for an LLM-backed
// suggester.
func BuildPrompt(req *Request) (string, error) {
	var b strings.Builder
	if err := promptTmpl.Execute(&b, req); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return b.String(), nil
}
