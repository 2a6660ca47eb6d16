package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c
	r.phrases = append(r.phrases, commandPhrase{canonical: c.Canonical, alias: c.Canonical})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{canonical: c.Canonical, alias: n})
	}
}

func (r *Registry) Command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Score     float64
}

// matchCommand scores the first input token against every registered
// phrase by levenshtein similarity and returns the best candidate plus
// runners-up for ambiguity prompts.
func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	verb := tokens[0]

	var candidates []commandCandidate
	for _, p := range r.phrases {
		candidates = append(candidates, commandCandidate{
			Canonical: p.canonical,
			Alias:     p.alias,
			Score:     similarity(verb, p.alias),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	best := candidates[0]
	var alternates []commandCandidate
	for _, c := range candidates[1:] {
		if c.Canonical == best.Canonical {
			continue
		}
		alternates = append(alternates, c)
		if len(alternates) == 3 {
			break
		}
	}
	return best, alternates
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	s := 1 - float64(d)/float64(longest)
	if s < 0 {
		return 0
	}
	return s
}

func normaliseInput(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		switch {
		case r == ' ' || r == '\t':
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == ':' || r == '+' || r == '/' || r == '=':
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenise(s string) []string {
	return strings.Fields(s)
}
