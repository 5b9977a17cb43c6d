package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/ashaether/content"
	"github.com/nathoo/ashaether/engine"
	"github.com/nathoo/ashaether/engine/save"
	"github.com/nathoo/ashaether/types"
)

// Game holds the live session and what meta-commands need to replace it.
// Both front-ends share it.
type Game struct {
	Session *engine.Session
	Content *content.Parsed
	Repo    *save.Repository // nil disables /save, /load, /slots and /clear
	Options engine.Options
	Slot    int // default slot for /save and /load
	Trace   bool
}

// NewGame starts a fresh session over c.
func NewGame(c *content.Parsed, repo *save.Repository, opts engine.Options) *Game {
	return &Game{
		Session: engine.NewSession(c, nil, opts),
		Content: c,
		Repo:    repo,
		Options: opts,
	}
}

// Step runs one game command against the current session.
func (g *Game) Step(input string) types.Result {
	return g.Session.Step(input)
}

// LoadSlot replaces the session with the one saved in slot. It reports
// false when the slot is empty.
func (g *Game) LoadSlot(ctx context.Context, slot int) (bool, error) {
	if g.Repo == nil {
		return false, errNoRepository
	}
	f, err := g.Repo.Load(ctx, slot)
	if err != nil {
		return false, err
	}
	if f == nil {
		return false, nil
	}
	g.Session = engine.NewSession(g.Content, &f.Session, g.Options)
	g.Slot = slot
	return true, nil
}

// Meta dispatches a meta-command. It returns the output lines and whether
// the front-end should exit.
func (g *Game) Meta(ctx context.Context, input string) ([]string, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, false
	}
	cmd := strings.ToLower(parts[0])
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true
	case "/save":
		return g.cmdSave(ctx, arg), false
	case "/load":
		return g.cmdLoad(ctx, arg), false
	case "/slots":
		return g.cmdSlots(ctx), false
	case "/clear":
		return g.cmdClear(ctx, arg), false
	case "/new":
		g.Session = engine.NewSession(g.Content, nil, g.Options)
		return []string{"New session started."}, false
	case "/help":
		return MetaHelp(), false
	case "/state":
		return g.cmdState(), false
	case "/events":
		return g.Session.Events(), false
	case "/trace":
		g.Trace = !g.Trace
		if g.Trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false
	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

// MetaHelp lists the meta-commands followed by the game commands.
func MetaHelp() []string {
	lines := []string{
		"System:",
		"  /save [slot]   Save the session (default: current slot)",
		"  /load [slot]   Load a saved session",
		"  /slots         List save slots",
		"  /clear [slot]  Delete a save slot",
		"  /new           Start a new session",
		"  /events        Show the recent event log",
		"  /state         Debug: dump session state",
		"  /trace         Toggle event trace output",
		"  /quit          Exit",
		"",
	}
	lines = append(lines, engine.HelpLines()...)
	return append(lines, "  again (g)                Repeat your last command")
}

// FormatTrace renders the events a step published.
func FormatTrace(res types.Result) []string {
	if len(res.Events) == 0 {
		return nil
	}
	out := []string{fmt.Sprintf("[trace] Events: %d", len(res.Events))}
	for _, e := range res.Events {
		if len(e.Data) == 0 {
			out = append(out, "[trace]   "+e.Type)
			continue
		}
		var kv []string
		for _, k := range slices.Sorted(maps.Keys(e.Data)) {
			kv = append(kv, fmt.Sprintf("%s=%v", k, e.Data[k]))
		}
		out = append(out, fmt.Sprintf("[trace]   %s %s", e.Type, strings.Join(kv, " ")))
	}
	return out
}

func (g *Game) slotArg(arg string) (int, error) {
	if arg == "" {
		return g.Slot, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("slot must be a number from 0 to %d", save.SlotCount-1)
	}
	return n, nil
}

func (g *Game) cmdSave(ctx context.Context, arg string) []string {
	if g.Repo == nil {
		return []string{"Save failed: " + errNoRepository.Error()}
	}
	slot, err := g.slotArg(arg)
	if err != nil {
		return []string{"Save failed: " + err.Error()}
	}
	f, err := g.Repo.Save(ctx, slot, g.Session.Snapshot())
	if err != nil {
		return []string{"Save failed: " + err.Error()}
	}
	g.Slot = slot
	return []string{fmt.Sprintf("Game saved to slot %d at %s.", slot, f.Timestamp)}
}

func (g *Game) cmdLoad(ctx context.Context, arg string) []string {
	slot, err := g.slotArg(arg)
	if err != nil {
		return []string{"Load failed: " + err.Error()}
	}
	ok, err := g.LoadSlot(ctx, slot)
	if err != nil {
		return []string{"Load failed: " + err.Error()}
	}
	if !ok {
		return []string{fmt.Sprintf("Load failed: slot %d is empty", slot)}
	}
	h := g.Session.HUD()
	out := []string{fmt.Sprintf("Game loaded from slot %d (level %d).", slot, h.Level)}
	return append(out, g.Session.Step("look").Output...)
}

func (g *Game) cmdSlots(ctx context.Context) []string {
	if g.Repo == nil {
		return []string{errNoRepository.Error()}
	}
	infos, err := g.Repo.ListSlots(ctx)
	if err != nil {
		return []string{"Listing failed: " + err.Error()}
	}
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		switch {
		case !info.Exists:
			out = append(out, fmt.Sprintf("Slot %d: empty", info.Slot))
		case info.Timestamp == save.Corrupted:
			out = append(out, fmt.Sprintf("Slot %d: corrupted", info.Slot))
		default:
			out = append(out, fmt.Sprintf("Slot %d: level %d, saved %s", info.Slot, info.Level, info.Timestamp))
		}
	}
	return out
}

func (g *Game) cmdClear(ctx context.Context, arg string) []string {
	if g.Repo == nil {
		return []string{"Clear failed: " + errNoRepository.Error()}
	}
	slot, err := g.slotArg(arg)
	if err != nil {
		return []string{"Clear failed: " + err.Error()}
	}
	if err := g.Repo.Clear(ctx, slot); err != nil {
		return []string{"Clear failed: " + err.Error()}
	}
	return []string{fmt.Sprintf("Slot %d cleared.", slot)}
}

func (g *Game) cmdState() []string {
	snap := g.Session.Snapshot()
	p := snap.Player
	out := []string{
		fmt.Sprintf("Session: %s", snap.ID),
		fmt.Sprintf("Level: %d (XP %d/%d)", p.Level, p.XP, p.XPToNext),
		fmt.Sprintf("HP: %.0f/%.0f  Stamina: %.0f/%.0f", p.HP, p.MaxHP, p.Stamina, p.MaxStamina),
		fmt.Sprintf("Cinders: %d", snap.Cinders),
		fmt.Sprintf("Regions: %v", snap.Regions.Unlocked),
		fmt.Sprintf("Active quests: %v", activeQuests(snap.Quests)),
	}
	if len(snap.WorldFlags) > 0 {
		out = append(out, fmt.Sprintf("Flags: %v", snap.WorldFlags))
	}
	if len(snap.Reputations) > 0 {
		out = append(out, fmt.Sprintf("Reputation: %v", snap.Reputations))
	}
	return out
}

func activeQuests(qs types.QuestState) []string {
	var ids []string
	for _, q := range qs.Quests {
		if q.Status == types.QuestActive {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
