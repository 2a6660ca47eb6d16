// Package parser maps free-typed player input to farming commands with
// fuzzy verb matching, so "hrvest 2" still harvests plot 2.
package parser

import "fmt"

const (
	matchThreshold = 0.5
	ambiguityGap   = 0.05
	ambiguityFloor = 0.65
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(raw string) Intent {
	intent := Intent{Raw: raw, Normalised: normaliseInput(raw)}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command (try: help)."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	best, alternates := p.registry.matchCommand(tokens)
	if best.Canonical == "" || best.Score < matchThreshold {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try: help, status, wait, plant, harvest, feed, buy, unlock, upgrade, save, load, export, import, quit.",
		}
		return intent
	}

	if len(alternates) > 0 && best.Score < 1 &&
		best.Score-alternates[0].Score < ambiguityGap && alternates[0].Score > ambiguityFloor {
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: []string{best.Canonical, alternates[0].Canonical},
		}
		return intent
	}

	intent.Verb = best.Canonical
	intent.Confidence = best.Score
	intent.Args = tokens[1:]
	return intent
}

// Describe renders one help line per registered command.
func (p *Parser) Describe() []string {
	cmds := p.registry.Commands()
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, fmt.Sprintf("%-8s %s", c.Canonical, c.Help))
	}
	return lines
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []CommandDef{
		{Canonical: "help", Aliases: []string{"commands", "h"}, Help: "list commands"},
		{Canonical: "status", Aliases: []string{"state", "info", "inventory"}, Help: "show coins, melons, plots and chickens"},
		{Canonical: "wait", Aliases: []string{"advance", "tick"}, Help: "wait <seconds>: advance the simulation"},
		{Canonical: "plant", Aliases: []string{"sow"}, Help: "plant <plot> [type]: plant a seed"},
		{Canonical: "harvest", Aliases: []string{"reap", "pick"}, Help: "harvest <plot>: collect ripe watermelons"},
		{Canonical: "collect", Aliases: []string{"gather", "forage"}, Help: "collect: pick the nearest forest seed"},
		{Canonical: "go", Aliases: []string{"switch", "area"}, Help: "go: switch between forest and farm"},
		{Canonical: "feed", Help: "feed <chicken>: spend a watermelon"},
		{Canonical: "buy", Aliases: []string{"purchase"}, Help: "buy plot|chicken|<upgrade 1-5>"},
		{Canonical: "unlock", Help: "unlock silver|gold|crystal"},
		{Canonical: "upgrade", Help: "upgrade <chicken>: advance its tier"},
		{Canonical: "save", Help: "write the save file"},
		{Canonical: "load", Help: "reload the save file"},
		{Canonical: "export", Help: "print a transferable save blob"},
		{Canonical: "import", Help: "import <blob>: replace state from a blob"},
		{Canonical: "quit", Aliases: []string{"exit", "q"}, Help: "save and leave"},
	} {
		r.RegisterCommand(c)
	}
	return r
}
