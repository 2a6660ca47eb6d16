package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/overgrown-games/melonpatch/internal/config"
	"github.com/overgrown-games/melonpatch/internal/game"
	"github.com/overgrown-games/melonpatch/internal/parser"
	"github.com/overgrown-games/melonpatch/internal/store"
)

// The REPL drives the same engine as the window client. Targeted verbs
// (plant 2, feed 1) walk the player to the entity and run the engine's
// Interact, so proximity and priority rules stay in one place.

const maxWaitSeconds = 3600

type repl struct {
	cfg    config.Config
	log    *slog.Logger
	parser *parser.Parser
	state  *game.GameState
	now    time.Time
}

func runREPL(cfg config.Config, log *slog.Logger) error {
	now := time.Now()
	r := &repl{cfg: cfg, log: log, parser: parser.New(), now: now}
	r.state = r.loadOrNew(now)

	fmt.Println("Melon Patch (text mode). Type help for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		intent := r.parser.Parse(line)
		if intent.Clarify != nil {
			fmt.Println(intent.Clarify.Prompt)
			for _, opt := range intent.Clarify.Options {
				fmt.Println("  - " + opt)
			}
			continue
		}
		if quit := r.dispatch(intent, line); quit {
			break
		}
	}

	if err := store.Save(r.cfg.SaveFile, r.state); err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	fmt.Println("Saved. Goodbye.")
	return scanner.Err()
}

func (r *repl) loadOrNew(now time.Time) *game.GameState {
	st, err := store.Load(r.cfg.SaveFile, now)
	if err != nil {
		r.log.Warn("save file unreadable, starting a new game", "file", r.cfg.SaveFile, "error", err)
	}
	if st != nil {
		fmt.Println("Save loaded; offline progress applied.")
		return st
	}
	seed := r.cfg.WorldSeed
	if seed == 0 {
		seed = now.UnixNano()
	}
	return game.NewGameState(seed, now)
}

func (r *repl) dispatch(intent parser.Intent, raw string) (quit bool) {
	switch intent.Verb {
	case "help":
		for _, line := range r.parser.Describe() {
			fmt.Println("  " + line)
		}
	case "status":
		r.printStatus()
	case "wait":
		r.doWait(intent.Args)
	case "go":
		r.state.SwitchArea()
		fmt.Printf("You are now at the %s.\n", r.state.Area)
	case "collect":
		r.doCollect()
	case "plant", "harvest":
		r.doPlotAction(intent.Verb, intent.Args)
	case "feed":
		r.doFeed(intent.Args)
	case "buy":
		r.doBuy(intent.Args)
	case "unlock":
		r.doUnlock(intent.Args)
	case "upgrade":
		r.doUpgradeChicken(intent.Args)
	case "save":
		if err := store.Save(r.cfg.SaveFile, r.state); err != nil {
			fmt.Println("Save failed:", err)
		} else {
			fmt.Println("Saved.")
		}
	case "load":
		r.state = r.loadOrNew(r.now)
	case "export":
		blob, err := store.Export(r.state)
		if err != nil {
			fmt.Println("Export failed:", err)
		} else {
			fmt.Println(blob)
		}
	case "import":
		// The blob is case-sensitive; take it from the raw line, not
		// the normalised tokens.
		fields := strings.Fields(raw)
		if len(fields) < 2 {
			fmt.Println("Usage: import <blob>")
			return false
		}
		st, err := store.Import(fields[1], r.now)
		if err != nil {
			fmt.Println("Import rejected:", err)
			return false
		}
		r.state = st
		fmt.Println("Import accepted.")
	case "quit":
		return true
	}
	return false
}

func (r *repl) printStatus() {
	st := r.state
	fmt.Printf("Area: %s   Coins: %.0f   Melons: %d   Eggs: %.1f   Lifetime: %.0f\n",
		st.Area, st.Player.Coins, st.Player.Watermelons, st.Player.Eggs, st.LifetimeCoins)
	fmt.Printf("Seeds: basic %d, silver %d, gold %d, crystal %d (cap %d per type)\n",
		st.Player.SeedInventory[game.SeedBasic],
		st.Player.SeedInventory[game.SeedSilver],
		st.Player.SeedInventory[game.SeedGold],
		st.Player.SeedInventory[game.SeedCrystal],
		st.Upgrades.SeedBagCapacity())
	for _, p := range st.Farm.Plots {
		switch {
		case !p.Planted:
			fmt.Printf("  plot %d: empty\n", p.ID)
		case p.Progress >= 1:
			fmt.Printf("  plot %d: %s, ripe\n", p.ID, p.SeedType)
		default:
			fmt.Printf("  plot %d: %s, %d%%\n", p.ID, p.SeedType, int(p.Progress*100))
		}
	}
	for _, c := range st.Farm.Chickens {
		state := "hungry"
		if c.Fed(r.now) {
			state = fmt.Sprintf("fed for %ds", int(c.FedUntil.Sub(r.now).Seconds()))
		}
		fmt.Printf("  chicken %d: %s, %s, %.1f eggs laid\n", c.ID, c.Tier, state, c.EggsProduced)
	}
	for _, k := range game.UpgradeKinds() {
		spec := game.UpgradeSpecFor(k)
		if cost, ok := st.Upgrades.NextCost(k); ok {
			fmt.Printf("  upgrade %d %s: level %d, next %.0f coins\n", int(k)+1, spec.Name, st.Upgrades.Level(k), cost)
		} else {
			fmt.Printf("  upgrade %d %s: maxed\n", int(k)+1, spec.Name)
		}
	}
}

// doWait advances the simulation in engine-sized steps under a virtual
// clock, so REPL time and tick clamping behave like the frame loop.
func (r *repl) doWait(args []string) {
	secs := 60
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Println("Usage: wait <seconds>")
			return
		}
		secs = n
	}
	if secs > maxWaitSeconds {
		secs = maxWaitSeconds
	}
	remaining := time.Duration(secs) * time.Second
	for remaining > 0 {
		step := game.MaxTickDelta
		if remaining < step {
			step = remaining
		}
		r.now = r.now.Add(step)
		r.state.Tick(game.Input{}, r.now, step)
		remaining -= step
	}
	fmt.Printf("%d seconds pass.\n", secs)
}

func (r *repl) doCollect() {
	if r.state.Area != game.AreaForest {
		fmt.Println("Seeds grow in the forest. Try: go")
		return
	}
	for _, s := range r.state.Forest.Seeds {
		if s.Collected || !r.state.SeedUnlocked(s.Type) {
			continue
		}
		r.state.Player.Position = s.Position
		res := r.state.Interact(r.now)
		if res.Message != "" {
			fmt.Println(res.Message)
		}
		return
	}
	fmt.Println("No seeds ready right now.")
}

func (r *repl) doPlotAction(verb string, args []string) {
	if r.state.Area != game.AreaFarm {
		fmt.Println("Plots are on the farm. Try: go")
		return
	}
	if len(args) < 1 {
		fmt.Printf("Usage: %s <plot>\n", verb)
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Usage: %s <plot>\n", verb)
		return
	}
	for _, p := range r.state.Farm.Plots {
		if p.ID != id {
			continue
		}
		r.state.Player.Position = p.Position
		res := r.state.Interact(r.now)
		if res.Message != "" {
			fmt.Println(res.Message)
		} else {
			fmt.Println("Nothing happens.")
		}
		return
	}
	fmt.Println("No such plot.")
}

func (r *repl) doFeed(args []string) {
	if r.state.Area != game.AreaFarm {
		fmt.Println("Chickens are on the farm. Try: go")
		return
	}
	id := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Usage: feed <chicken>")
			return
		}
		id = n
	}
	for _, c := range r.state.Farm.Chickens {
		if c.ID != id {
			continue
		}
		r.state.Player.Position = c.Position
		res := r.state.Interact(r.now)
		if res.Message != "" {
			fmt.Println(res.Message)
		} else {
			fmt.Println("The chicken ignores you. A watermelon might help.")
		}
		return
	}
	fmt.Println("No such chicken.")
}

func (r *repl) doBuy(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: buy plot|chicken|<upgrade 1-5>")
		return
	}
	switch args[0] {
	case "plot":
		if r.state.BuyPlot() {
			fmt.Println("Bought a new plot.")
		} else {
			fmt.Println("Not enough coins.")
		}
	case "chicken":
		if r.state.BuyChicken() {
			fmt.Println("Bought a new chicken.")
		} else {
			fmt.Println("Not enough coins.")
		}
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(game.UpgradeKinds()) {
			fmt.Println("Usage: buy plot|chicken|<upgrade 1-5>")
			return
		}
		kind := game.UpgradeKinds()[n-1]
		if r.state.BuyUpgrade(kind) {
			fmt.Printf("Upgraded %s to level %d.\n", game.UpgradeSpecFor(kind).Name, r.state.Upgrades.Level(kind))
		} else {
			fmt.Println("Upgrade rejected (maxed or unaffordable).")
		}
	}
}

func (r *repl) doUnlock(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: unlock silver|gold|crystal")
		return
	}
	t := game.SeedType(args[0])
	if r.state.UnlockSeedType(t) {
		fmt.Printf("Unlocked %s seeds.\n", t)
	} else {
		fmt.Println("Unlock rejected (unknown, already unlocked, or unaffordable).")
	}
}

func (r *repl) doUpgradeChicken(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: upgrade <chicken>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("Usage: upgrade <chicken>")
		return
	}
	if r.state.UpgradeChicken(id) {
		fmt.Println("Chicken upgraded.")
	} else {
		fmt.Println("Upgrade rejected (top tier or unaffordable).")
	}
}
