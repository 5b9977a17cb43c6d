package engine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/ashaether/engine/dialogue"
	"github.com/nathoo/ashaether/engine/parser"
	"github.com/nathoo/ashaether/engine/perks"
	"github.com/nathoo/ashaether/engine/resolve"
	"github.com/nathoo/ashaether/engine/upgrades"
	"github.com/nathoo/ashaether/types"
)

const (
	fightStaminaCost   = 10.0
	defaultWaitSeconds = 30
)

// conversation is the dialogue the console is currently in.
type conversation struct {
	rt   *dialogue.Runtime
	node string
}

// Step runs one console command. Output lists the messages the command
// logged in the order they happened, followed by the command's own lines.
func (s *Session) Step(input string) types.Result {
	intent := parser.Parse(input)
	if intent.Verb == "" {
		return types.Result{}
	}

	s.recording = true
	s.recorded = nil
	lines := s.dispatch(intent)
	s.recording = false

	res := types.Result{Events: s.recorded}
	for _, e := range s.recorded {
		if e.Type != types.EventLogged {
			continue
		}
		if msg, ok := e.Data["message"].(string); ok {
			res.Output = append(res.Output, msg)
		}
	}
	res.Output = append(res.Output, lines...)
	s.recorded = nil

	s.logger.Debug("console step", "verb", intent.Verb, "object", intent.Object, "events", len(res.Events))
	return res
}

// InConversation reports whether the console is inside a dialogue.
func (s *Session) InConversation() bool { return s.talk != nil }

func (s *Session) record(e types.Event) {
	if s.recording {
		s.recorded = append(s.recorded, e)
	}
}

func (s *Session) dispatch(in types.Intent) []string {
	switch in.Verb {
	case "look":
		return s.cmdLook()
	case "quests":
		return s.cmdQuests()
	case "inventory":
		return s.cmdInventory()
	case "map":
		return s.cmdMap()
	case "standing":
		return s.cmdStanding()
	case "market":
		return s.cmdMarket()
	case "recipes":
		return s.cmdRecipes(firstNonEmpty(in.Target, in.Object))
	case "perk":
		return s.cmdPerk(in.Object)
	case "go":
		return s.cmdGo(in.Object)
	case "talk":
		return s.cmdTalk(in.Object)
	case "choose":
		return s.cmdChoose(in.Object)
	case "leave":
		return s.cmdLeave()
	case "fight":
		return s.cmdFight(in.Object)
	case "stance":
		return s.cmdStance(in.Object)
	case "use":
		return s.cmdUse(in.Object)
	case "quickbar":
		return s.cmdQuickbar(in.Object, in.Target)
	case "buy":
		return s.cmdBuy(in.Object)
	case "sell":
		return s.cmdSell(in.Object)
	case "craft":
		return s.cmdCraft(in.Object)
	case "upgrade":
		return s.cmdUpgrade(in.Object)
	case "rest":
		s.RestAtCheckpoint()
		return nil
	case "wait":
		return s.cmdWait(in.Object)
	case "help":
		return HelpLines()
	default:
		return []string{fmt.Sprintf("You can't %s here. Type help for commands.", in.Verb)}
	}
}

// HelpLines describes the console commands.
func HelpLines() []string {
	return []string{
		"Game commands:",
		"  look (l)                 Status and current objective",
		"  quests (q)               Quest journal",
		"  inventory (i)            What you carry",
		"  map (m)                  Regions and where you can travel",
		"  go <region>              Travel to an unlocked region",
		"  talk <npc>               Start a conversation",
		"  <n> / choose <n>         Pick a dialogue choice",
		"  leave                    End the conversation",
		"  fight <enemy>            Fight an enemy",
		"  stance <mode>            Switch weapon stance",
		"  use <item>               Use a consumable",
		"  bind <item> to <n>       Put an item on quickbar slot n",
		"  market                   Foundry market stock",
		"  buy <item>               Buy from the market",
		"  sell [n] <item>          Sell to the market",
		"  recipes [station]        Known recipes",
		"  craft <recipe>           Craft a recipe",
		"  upgrade weapon|armor     Temper equipment with Anchor Dust",
		"  perk [name]              List perks or unlock one",
		"  standing                 Faction reputation",
		"  rest                     Rest at a checkpoint",
		"  wait [seconds]           Let time pass",
	}
}

// Status commands

func (s *Session) cmdLook() []string {
	h := s.HUD()
	lines := []string{
		fmt.Sprintf("Level %d | HP %d/%d | Stamina %d/%d | XP %d/%d | Cinders %d",
			h.Level, h.HP, h.MaxHP, h.Stamina, h.MaxStamina, h.XP, h.XPToNext, h.Cinders),
		fmt.Sprintf("Stance: %s | Perk points: %d", h.WeaponMode, s.PerkPoints()),
		"Objective: " + h.QuestHint,
	}
	if c := s.talk; c != nil {
		if node, err := c.rt.Node(c.node); err == nil {
			lines = append(lines, fmt.Sprintf("Talking with %s.", s.speakerName(node.SpeakerID)))
		}
	}
	return lines
}

func (s *Session) cmdQuests() []string {
	var lines []string
	for _, q := range s.QuestEntries() {
		if q.Status == types.QuestLocked {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", q.Status, q.Title))
		if q.Status != types.QuestActive {
			continue
		}
		for _, o := range q.Objectives {
			lines = append(lines, fmt.Sprintf("  - %s %d/%d", o.Description, o.Progress, o.Required))
		}
	}
	if len(lines) == 0 {
		return []string{NoObjectivesHint}
	}
	return lines
}

func (s *Session) cmdInventory() []string {
	var lines []string
	for _, e := range s.InventoryEntries() {
		if e.ItemID != "" {
			lines = append(lines, fmt.Sprintf("%s x%d", e.Name, e.Amount))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "You carry nothing.")
	}
	lines = append(lines, fmt.Sprintf("Cinders: %d", s.cinders))
	lines = append(lines, "Quickbar: "+strings.Join(s.quickbarLabels(), " | "))
	return lines
}

func (s *Session) cmdMap() []string {
	lines := make([]string, 0, len(s.content.Regions))
	for _, r := range s.RegionEntries() {
		status := "sealed"
		switch {
		case r.Discovered:
			status = "discovered"
		case r.Unlocked:
			status = "open"
		}
		lines = append(lines, fmt.Sprintf("%s (level %d): %s", r.Name, r.RecommendedLevel, status))
	}
	return lines
}

func (s *Session) cmdStanding() []string {
	lines := make([]string, 0, len(s.reputations))
	for _, f := range sortedKeys(s.reputations) {
		lines = append(lines, fmt.Sprintf("%s: %d", titleize(f), s.reputations[f]))
	}
	return lines
}

func (s *Session) cmdMarket() []string {
	var lines []string
	for _, e := range s.Catalog() {
		lines = append(lines, fmt.Sprintf("%s: %d cinders (%d in stock)", e.DisplayName, e.BuyPrice, e.Stock))
	}
	return append(lines, fmt.Sprintf("Restock in %ds.", s.SecondsToRestock()))
}

func (s *Session) cmdRecipes(station string) []string {
	var lines []string
	for _, r := range s.Recipes(station) {
		cost := make([]string, 0, len(r.Cost)+1)
		for _, c := range r.Cost {
			cost = append(cost, fmt.Sprintf("%d %s", c.Amount, s.itemName(c.ItemID)))
		}
		if r.CindersCost > 0 {
			cost = append(cost, fmt.Sprintf("%d cinders", r.CindersCost))
		}
		lines = append(lines, fmt.Sprintf("%s [%s]: %s", r.Name, r.Station, strings.Join(cost, ", ")))
	}
	if len(lines) == 0 {
		return []string{fmt.Sprintf("No recipes for %s.", station)}
	}
	return lines
}

func (s *Session) cmdPerk(name string) []string {
	defs := s.perks.Definitions()
	if name == "" {
		lines := []string{fmt.Sprintf("Perk points: %d", s.PerkPoints())}
		for _, p := range defs {
			lines = append(lines, fmt.Sprintf("%s (%s) %d/%d: %s", p.Name, p.Branch, s.PerkRank(p.ID), p.MaxRank, p.Description))
		}
		return lines
	}

	cands := make([]resolve.Candidate, 0, len(defs))
	for _, p := range defs {
		cands = append(cands, resolve.Candidate{ID: p.ID, Name: p.Name})
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}
	switch err := s.UnlockPerk(id); {
	case errors.Is(err, perks.ErrNoPoints):
		return []string{"You have no perk points to spend."}
	case errors.Is(err, perks.ErrMaxRank):
		return []string{"That perk is already at its highest rank."}
	case err != nil:
		return []string{sentence(err)}
	}
	return nil
}

// Travel and dialogue

func (s *Session) cmdGo(name string) []string {
	if name == "" {
		return []string{"Go where?"}
	}
	if !s.IsAlive() {
		return []string{"The warden has fallen. Rest before travelling."}
	}
	cands := make([]resolve.Candidate, 0, len(s.content.Regions))
	for _, r := range s.content.Regions {
		cands = append(cands, resolve.Candidate{ID: r.ID, Name: r.Name})
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}
	if err := s.EnterRegion(id); errors.Is(err, ErrRegionLocked) {
		return []string{fmt.Sprintf("The way to %s is sealed.", s.regionName(id))}
	} else if err != nil {
		return []string{sentence(err)}
	}
	s.talk = nil
	return []string{fmt.Sprintf("You are in %s.", s.regionName(id))}
}

func (s *Session) cmdTalk(name string) []string {
	if name == "" {
		return []string{"Talk to whom?"}
	}
	cands := make([]resolve.Candidate, 0, len(s.content.Dialogues))
	for _, d := range s.content.Dialogues {
		c := resolve.Candidate{ID: d.ID, Name: d.ID}
		if len(d.Nodes) > 0 {
			c.Name = s.speakerName(d.Nodes[0].SpeakerID)
		}
		cands = append(cands, c)
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}

	rt, err := s.Talk(id)
	if err != nil {
		return []string{sentence(err)}
	}
	start, err := rt.StartNode()
	if err != nil {
		return []string{sentence(err)}
	}
	s.talk = &conversation{rt: rt}
	return s.enterNode(start)
}

func (s *Session) cmdChoose(pick string) []string {
	c := s.talk
	if c == nil {
		return []string{"You are not talking to anyone."}
	}
	choices, err := c.rt.AvailableChoices(c.node)
	if err != nil {
		s.talk = nil
		return []string{sentence(err)}
	}

	idx := slices.IndexFunc(choices, func(ch types.Choice) bool { return ch.ID == pick })
	if n, err := strconv.Atoi(pick); err == nil {
		idx = n - 1
	}
	if idx < 0 || idx >= len(choices) {
		return []string{fmt.Sprintf("Choose 1 to %d.", len(choices))}
	}

	next, err := c.rt.Choose(c.node, choices[idx].ID)
	if err != nil {
		s.talk = nil
		return []string{sentence(err)}
	}
	return s.enterNode(next)
}

func (s *Session) cmdLeave() []string {
	if s.talk == nil {
		return []string{"You are not talking to anyone."}
	}
	s.talk = nil
	return []string{"You take your leave."}
}

// enterNode shows a node and its choices. The conversation ends at a node
// without available choices or whose conditions fail.
func (s *Session) enterNode(nodeID string) []string {
	c := s.talk
	node, ran, err := c.rt.Enter(nodeID)
	if err != nil {
		s.talk = nil
		return []string{sentence(err)}
	}
	if !ran {
		s.talk = nil
		return []string{"(They have nothing more to say.)"}
	}

	lines := []string{fmt.Sprintf("%s: %q", s.speakerName(node.SpeakerID), node.Text)}
	choices, err := c.rt.AvailableChoices(nodeID)
	if err != nil || len(choices) == 0 {
		s.talk = nil
		return append(lines, "(The conversation ends.)")
	}
	c.node = nodeID
	for i, ch := range choices {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, ch.Text))
	}
	return lines
}

// speakerName turns npc_archivist_lyra into "Archivist Lyra".
func (s *Session) speakerName(id string) string {
	return titleize(strings.TrimPrefix(id, "npc_"))
}

// Combat

func (s *Session) cmdFight(name string) []string {
	if name == "" {
		return []string{"Fight what?"}
	}
	if !s.IsAlive() {
		return []string{"The warden has fallen. Rest before fighting."}
	}
	cands := make([]resolve.Candidate, 0, len(s.content.Enemies))
	for _, e := range s.content.Enemies {
		cands = append(cands, resolve.Candidate{ID: e.ID, Name: e.Name})
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}
	if !s.SpendStamina(fightStaminaCost) {
		return []string{"Too exhausted to fight. Rest or wait."}
	}

	enemy := s.enemies[id]
	hit := float64(enemy.Attack)
	s.log(fmt.Sprintf("%s hits for %s.", enemy.Name, formatFloat(s.mitigate(hit, false))))
	s.ReceiveDamage(hit, false)
	if !s.IsAlive() {
		return nil
	}
	if _, err := s.DefeatEnemy(id); err != nil {
		return []string{sentence(err)}
	}
	return nil
}

func (s *Session) cmdStance(mode string) []string {
	if mode == "" {
		return []string{"Stance: " + s.WeaponMode()}
	}
	s.SetWeaponMode(mode)
	return nil
}

// Items and the market

func (s *Session) inventoryCandidates() []resolve.Candidate {
	var cands []resolve.Candidate
	for _, e := range s.InventoryEntries() {
		if e.ItemID == "" || slices.ContainsFunc(cands, func(c resolve.Candidate) bool { return c.ID == e.ItemID }) {
			continue
		}
		cands = append(cands, resolve.Candidate{ID: e.ItemID, Name: e.Name})
	}
	return cands
}

func (s *Session) cmdUse(name string) []string {
	if name == "" {
		return []string{"Use what?"}
	}
	id, err := resolve.Resolve(name, s.inventoryCandidates())
	if err != nil {
		return []string{sentence(err)}
	}
	if err := s.UseItem(id); errors.Is(err, ErrNotUsable) {
		return []string{fmt.Sprintf("You can't use %s.", s.itemName(id))}
	} else if err != nil {
		return []string{sentence(err)}
	}
	return nil
}

func (s *Session) cmdQuickbar(name, slot string) []string {
	n, err := strconv.Atoi(slot)
	if name == "" || err != nil {
		return []string{"Bind what to which slot? Try: bind tincture to 1"}
	}
	id, err := resolve.Resolve(name, s.inventoryCandidates())
	if err != nil {
		return []string{sentence(err)}
	}
	idx, _ := s.findSlot(id)
	if err := s.AssignQuickbar(n-1, &idx); err != nil {
		return []string{fmt.Sprintf("There is no quickbar slot %d.", n)}
	}
	return []string{fmt.Sprintf("Bound %s to slot %d.", s.itemName(id), n)}
}

func (s *Session) cmdBuy(name string) []string {
	if name == "" {
		return []string{"Buy what?"}
	}
	var cands []resolve.Candidate
	for _, e := range s.Catalog() {
		cands = append(cands, resolve.Candidate{ID: e.ID, Name: e.DisplayName})
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}
	if res := s.Buy(id); !res.OK {
		return []string{res.Reason}
	}
	return nil
}

func (s *Session) cmdSell(object string) []string {
	amount, name := parser.SplitAmount(object, 1)
	if name == "" {
		return []string{"Sell what?"}
	}
	id, err := resolve.Resolve(name, s.inventoryCandidates())
	if err != nil {
		return []string{sentence(err)}
	}
	if res := s.Sell(id, amount); !res.OK {
		return []string{res.Reason}
	}
	return nil
}

func (s *Session) cmdCraft(name string) []string {
	if name == "" {
		return []string{"Craft what?"}
	}
	cands := make([]resolve.Candidate, 0, len(s.content.Recipes))
	for _, r := range s.content.Recipes {
		cands = append(cands, resolve.Candidate{ID: r.ID, Name: r.Name})
	}
	id, err := resolve.Resolve(name, cands)
	if err != nil {
		return []string{sentence(err)}
	}
	res, err := s.Craft(id)
	if err != nil {
		return []string{sentence(err)}
	}
	if !res.Crafted {
		return []string{res.Reason}
	}
	return nil
}

func (s *Session) cmdUpgrade(target string) []string {
	var t upgrades.Target
	switch target {
	case "weapon", "blade", "sword":
		t = upgrades.Weapon
	case "armor", "armour", "coat":
		t = upgrades.Armor
	default:
		return []string{"Upgrade your weapon or your armor?"}
	}
	if res := s.Upgrade(t); !res.OK {
		return []string{res.Reason}
	}
	return nil
}

func (s *Session) cmdWait(arg string) []string {
	secs := defaultWaitSeconds
	if n, err := strconv.Atoi(arg); err == nil && n > 0 {
		secs = n
	}
	if s.TickShop(float64(secs)) {
		s.log("The foundry market restocked.")
	}
	s.RegenStamina(float64(secs))
	return []string{fmt.Sprintf("%d seconds pass.", secs)}
}

// sentence capitalizes an error for display.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
