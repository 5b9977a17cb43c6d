// Package engine provides the game Session: the orchestrator that owns
// player state and wires content, quests, dialogue, inventory, perks,
// crafting, the market and upgrades together. Front-ends mutate it through
// its methods and read it through pull-based view models.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/ashaether/content"
	"github.com/nathoo/ashaether/engine/baseline"
	"github.com/nathoo/ashaether/engine/crafting"
	"github.com/nathoo/ashaether/engine/dialogue"
	"github.com/nathoo/ashaether/engine/economy"
	"github.com/nathoo/ashaether/engine/events"
	"github.com/nathoo/ashaether/engine/inventory"
	"github.com/nathoo/ashaether/engine/perks"
	"github.com/nathoo/ashaether/engine/quests"
	"github.com/nathoo/ashaether/logging"
	"github.com/nathoo/ashaether/types"
)

// EventLogSize is the number of messages the session keeps, newest first.
const EventLogSize = 8

var (
	ErrUnknownConversation = errors.New("unknown conversation")
	ErrUnknownEnemy        = errors.New("unknown enemy")
	ErrUnknownRegion       = errors.New("unknown region")
	ErrRegionLocked        = errors.New("region is locked")
	ErrNotUsable           = errors.New("item cannot be used")
	ErrItemMissing         = errors.New("item is not in inventory")
)

var _ dialogue.StateAccess = (*Session)(nil)

// Options configures a new Session.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Seed seeds the loot RNG of a new game. Zero derives it from the
	// session id. Restored sessions always use the saved RNG state.
	Seed int64
	// Listings is the market stock. Nil uses economy.FoundryMarket.
	Listings []economy.Listing
	// Now is the clock used for snapshot timestamps. Nil uses time.Now.
	Now func() time.Time
}

// Session is one playthrough. It is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	content *content.Parsed

	items      map[string]types.ItemDef
	questDefs  map[string]types.QuestDef
	questOrder []string
	dialogues  map[string]types.Conversation
	regionDefs map[string]types.RegionDef
	enemies    map[string]types.EnemyDef

	stats       types.PlayerStats
	cinders     int
	equipment   types.Equipment
	upgrades    types.UpgradeState
	flags       map[string]any
	reputations map[string]int
	regions     types.RegionState
	eventLog    []string

	inventory *inventory.Inventory
	quests    *quests.Machine
	perks     *perks.Tree
	crafting  *crafting.System
	loot      *economy.Loot
	shop      *economy.Shop
	rng       *RNG
	bus       *events.Bus

	talk      *conversation
	recording bool
	recorded  []types.Event

	logger *slog.Logger
	now    func() time.Time
}

// NewSession builds a session over validated content. A nil snapshot starts
// a new game; otherwise the snapshot is restored as is.
func NewSession(c *content.Parsed, snap *types.SessionSnapshot, opts Options) *Session {
	s := &Session{
		content: c,
		bus:     events.NewBus(),
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.bus.SubscribeAll(s.record)
	if s.now == nil {
		s.now = time.Now
	}
	listings := opts.Listings
	if listings == nil {
		listings = economy.FoundryMarket
	}

	s.indexContent()

	if snap != nil {
		s.restore(*snap, listings)
	} else {
		s.fresh(opts.Seed, listings)
	}
	s.logger = logging.WithSession(s.logger, s.id)

	for _, q := range c.Quests {
		s.quests.Register(questDefinition(q))
	}
	for id, v := range s.flags {
		if b, ok := v.(bool); ok {
			s.quests.SetFlag(id, b)
		}
	}

	if snap == nil {
		s.seedStartingInventory()
		s.log(baseline.DeployMessage)
	}

	s.recomputeDerivedStats()
	s.quests.SyncAvailability()

	s.logger.Info("session ready",
		"restored", snap != nil,
		"level", s.stats.Level,
		"rng_seed", s.rng.Seed(),
	)
	return s
}

func (s *Session) indexContent() {
	c := s.content
	s.items = make(map[string]types.ItemDef, len(c.Items))
	for _, it := range c.Items {
		s.items[it.ID] = it
	}
	s.questDefs = make(map[string]types.QuestDef, len(c.Quests))
	for _, q := range c.Quests {
		s.questDefs[q.ID] = q
		s.questOrder = append(s.questOrder, q.ID)
	}
	s.dialogues = make(map[string]types.Conversation, len(c.Dialogues))
	for _, d := range c.Dialogues {
		s.dialogues[d.ID] = d
	}
	s.regionDefs = make(map[string]types.RegionDef, len(c.Regions))
	for _, r := range c.Regions {
		s.regionDefs[r.ID] = r
	}
	s.enemies = make(map[string]types.EnemyDef, len(c.Enemies))
	for _, e := range c.Enemies {
		s.enemies[e.ID] = e
	}
	s.crafting = crafting.New(c.Recipes)
	s.loot = economy.NewLoot(c.LootTables)
}

func (s *Session) fresh(seed int64, listings []economy.Listing) {
	s.id = uuid.New()
	if seed == 0 {
		seed = baseline.SeedFor(s.id)
	}
	s.rng = NewRNG(seed)

	s.stats = baseline.Player()
	s.cinders = baseline.StartingCinders
	s.equipment = baseline.Equipment()
	s.flags = map[string]any{}
	s.reputations = baseline.Reputations()
	s.regions = baseline.Regions()

	s.inventory = inventory.New(inventory.DefaultWidth, inventory.DefaultHeight, inventory.DefaultQuickbar)
	s.quests = quests.New()
	s.perks = perks.New(s.content.Perks, baseline.Perks())
	s.shop = economy.NewShop(listings, baseline.Shop())
}

func (s *Session) restore(snap types.SessionSnapshot, listings []economy.Listing) {
	s.id = snap.ID
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	s.rng = RestoreRNG(snap.RNG.Seed, snap.RNG.Position)

	s.stats = snap.Player
	s.cinders = snap.Cinders
	s.equipment = snap.Equipment
	s.upgrades = snap.Upgrades
	s.flags = normalizeFlags(snap.WorldFlags)
	s.reputations = baseline.Reputations()
	maps.Copy(s.reputations, snap.Reputations)
	s.regions = types.RegionState{
		Unlocked:   slices.Clone(snap.Regions.Unlocked),
		Discovered: slices.Clone(snap.Regions.Discovered),
	}
	s.eventLog = slices.Clone(snap.EventLog)
	if len(s.eventLog) > EventLogSize {
		s.eventLog = s.eventLog[:EventLogSize]
	}

	s.inventory = inventory.FromState(snap.Inventory)
	s.quests = quests.FromState(snap.Quests)
	s.perks = perks.New(s.content.Perks, snap.Perks)
	s.shop = economy.NewShop(listings, snap.Shop)
}

func questDefinition(q types.QuestDef) quests.Definition {
	def := quests.Definition{ID: q.ID, Title: q.Title}
	for _, o := range q.Objectives {
		def.Objectives = append(def.Objectives, quests.Objective{
			ID:          o.ID,
			Description: o.Type + ": " + o.TargetID,
			Required:    o.Required,
		})
	}
	if p := q.Prerequisites; p != nil {
		def.Prerequisites = &quests.Prerequisites{QuestsCompleted: p.Quests}
		for _, f := range p.Flags {
			def.Prerequisites.Flags = append(def.Prerequisites.Flags, quests.FlagRequirement{ID: f.ID, Equals: f.Equals})
		}
	}
	return def
}

func (s *Session) seedStartingInventory() {
	for _, it := range baseline.StartingInventory {
		s.AddItem(it.ItemID, it.Amount)
	}
	for _, it := range baseline.StartingInventory {
		if it.Quickbar < 0 {
			continue
		}
		if slot, ok := s.findSlot(it.ItemID); ok {
			if err := s.inventory.AssignQuickbar(it.Quickbar, &slot); err != nil {
				s.logger.Warn("assigning quickbar", "item_id", it.ItemID, "error", err)
			}
		}
	}
}

func (s *Session) findSlot(itemID string) (int, bool) {
	for i := range s.inventory.Capacity() {
		if st := s.inventory.Slot(i); st != nil && st.ItemID == itemID {
			return i, true
		}
	}
	return 0, false
}

// ID returns the playthrough id.
func (s *Session) ID() uuid.UUID { return s.id }

// Content returns the content the session was built on.
func (s *Session) Content() *content.Parsed { return s.content }

// Subscribe registers a handler for one event type.
func (s *Session) Subscribe(eventType string, h events.Handler) { s.bus.Subscribe(eventType, h) }

// SubscribeAll registers a handler for every event.
func (s *Session) SubscribeAll(h events.Handler) { s.bus.SubscribeAll(h) }

func (s *Session) publish(eventType string, data map[string]any) {
	s.bus.Publish(types.Event{Type: eventType, Data: data})
}

// log records a player-facing message, newest first.
func (s *Session) log(msg string) {
	s.eventLog = slices.Insert(s.eventLog, 0, msg)
	if len(s.eventLog) > EventLogSize {
		s.eventLog = s.eventLog[:EventLogSize]
	}
	s.logger.Debug("session log", "message", msg)
	s.publish(types.EventLogged, map[string]any{"message": msg})
}

// Events returns the event log, newest first.
func (s *Session) Events() []string {
	return slices.Clone(s.eventLog)
}

// Snapshot returns the complete serializable state. Only the timestamp
// differs between two snapshots of an unchanged session.
func (s *Session) Snapshot() types.SessionSnapshot {
	return types.SessionSnapshot{
		ID:          s.id,
		Player:      s.stats,
		Cinders:     s.cinders,
		Equipment:   s.equipment,
		Inventory:   s.inventory.State(),
		Quests:      s.quests.State(),
		WorldFlags:  maps.Clone(s.flags),
		Reputations: maps.Clone(s.reputations),
		Perks:       s.perks.State(),
		Regions:     s.Regions(),
		Upgrades:    s.upgrades,
		Shop:        s.shop.State(),
		RNG:         s.rng.State(),
		EventLog:    s.Events(),
		Timestamp:   s.now().UTC().Format(baseline.TimestampLayout),
	}
}

// Flags

// SetFlag writes a world flag. Booleans are mirrored into the quest machine
// and availability is synced afterwards.
func (s *Session) SetFlag(id string, value any) {
	value = normalizeFlag(value)
	s.flags[id] = value
	if b, ok := value.(bool); ok {
		s.quests.SetFlag(id, b)
	}
	s.publish(types.EventFlagChanged, map[string]any{"flag": id, "value": value})
	s.syncQuests()
}

// Flag returns a world flag or nil when unset.
func (s *Session) Flag(id string) any {
	return s.flags[id]
}

func (s *Session) syncQuests() {
	for _, id := range s.quests.SyncAvailability() {
		s.publish(types.EventQuestAvailable, map[string]any{"quest": id})
	}
}

// normalizeFlag stores every number as float64 so snapshots compare equal
// after a JSON round trip.
func normalizeFlag(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func normalizeFlags(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeFlag(v)
	}
	return out
}

// Reputation

// Reputation returns a faction standing. Unknown factions are 0.
func (s *Session) Reputation(factionID string) int {
	return s.reputations[factionID]
}

// AddReputation changes a faction standing.
func (s *Session) AddReputation(factionID string, amount int) {
	s.reputations[factionID] += amount
	sign := ""
	if amount >= 0 {
		sign = "+"
	}
	s.log(fmt.Sprintf("%s reputation %s%d.", factionID, sign, amount))
	s.publish(types.EventReputation, map[string]any{"faction": factionID, "amount": amount})
}

// Regions

// Regions returns a copy of the unlocked and discovered region lists.
func (s *Session) Regions() types.RegionState {
	return types.RegionState{
		Unlocked:   slices.Clone(s.regions.Unlocked),
		Discovered: slices.Clone(s.regions.Discovered),
	}
}

// DiscoverRegion marks a region visited and grants 20 XP the first time.
func (s *Session) DiscoverRegion(regionID string) {
	if slices.Contains(s.regions.Discovered, regionID) {
		return
	}
	s.regions.Discovered = append(s.regions.Discovered, regionID)
	s.AwardXP(20)
	s.log(fmt.Sprintf("Discovered %s.", s.regionName(regionID)))
	s.publish(types.EventRegionFound, map[string]any{"region": regionID})
}

// UnlockRegion opens travel to a region.
func (s *Session) UnlockRegion(regionID string) {
	if slices.Contains(s.regions.Unlocked, regionID) {
		return
	}
	s.regions.Unlocked = append(s.regions.Unlocked, regionID)
	s.log(fmt.Sprintf("Unlocked region: %s.", s.regionName(regionID)))
	s.publish(types.EventRegionUnlocked, map[string]any{"region": regionID})
}

// EnterRegion travels to an unlocked region: it is discovered and counts
// toward enter_zone objectives.
func (s *Session) EnterRegion(regionID string) error {
	if _, ok := s.regionDefs[regionID]; !ok {
		return fmt.Errorf("region %s: %w", regionID, ErrUnknownRegion)
	}
	if !slices.Contains(s.regions.Unlocked, regionID) {
		return fmt.Errorf("region %s: %w", regionID, ErrRegionLocked)
	}
	s.DiscoverRegion(regionID)
	s.RecordObjectiveProgress("enter_zone", regionID, 1)
	return nil
}

// Dialogue

// Conversation looks up a conversation by id.
func (s *Session) Conversation(id string) (types.Conversation, bool) {
	conv, ok := s.dialogues[id]
	return conv, ok
}

// Talk opens a conversation bound to this session. Talking counts toward
// talk objectives for the speaker of the opening node.
func (s *Session) Talk(conversationID string) (*dialogue.Runtime, error) {
	conv, ok := s.dialogues[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrUnknownConversation)
	}
	rt := dialogue.New(conv, s)
	if len(conv.Nodes) > 0 {
		s.RecordObjectiveProgress("talk", conv.Nodes[0].SpeakerID, 1)
	}
	return rt, nil
}
