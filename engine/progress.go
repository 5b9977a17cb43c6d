package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/nathoo/ashaether/engine/baseline"
	"github.com/nathoo/ashaether/types"
)

// Reward is a bundle of gains applied at once.
type Reward struct {
	Cinders    int
	XP         int
	Reputation map[string]int
	Items      []types.ItemAmount
}

// QuestStatus returns the status of a quest and whether it exists.
func (s *Session) QuestStatus(questID string) (types.QuestStatus, bool) {
	return s.quests.Status(questID)
}

// Quest returns a copy of a quest instance.
func (s *Session) Quest(questID string) (types.QuestInstance, bool) {
	return s.quests.Quest(questID)
}

// StartQuest starts an available quest. Any other status is a no-op.
func (s *Session) StartQuest(questID string) {
	if st, ok := s.quests.Status(questID); !ok || st != types.QuestAvailable {
		return
	}
	if err := s.quests.Start(questID); err != nil {
		s.logger.Warn("starting quest", "quest_id", questID, "error", err)
		return
	}
	s.log(fmt.Sprintf("Quest started: %s.", s.questTitle(questID)))
	s.publish(types.EventQuestStarted, map[string]any{"quest": questID})
}

// CompleteQuest fills every objective of an active quest and grants its
// rewards. Any other status is a no-op.
func (s *Session) CompleteQuest(questID string) {
	inst, ok := s.quests.Quest(questID)
	if !ok || inst.Status != types.QuestActive {
		return
	}
	for _, o := range inst.Objectives {
		if o.Progress >= o.Required {
			continue
		}
		if _, err := s.quests.Advance(questID, o.ID, o.Required-o.Progress); err != nil {
			s.logger.Warn("completing quest", "quest_id", questID, "objective_id", o.ID, "error", err)
			return
		}
	}
	s.onQuestCompleted(questID)
}

// AdvanceQuestObjective adds progress to one objective of an active quest
// and grants the rewards if that completes it.
func (s *Session) AdvanceQuestObjective(questID, objectiveID string, amount int) error {
	completed, err := s.quests.Advance(questID, objectiveID, amount)
	if err != nil {
		return err
	}
	if completed {
		s.onQuestCompleted(questID)
	}
	return nil
}

// RecordObjectiveProgress advances every objective of an active quest whose
// kind and target match. Amounts below 1 count as 1.
func (s *Session) RecordObjectiveProgress(kind, targetID string, amount int) {
	amount = max(1, amount)

	for _, qid := range s.questOrder {
		def := s.questDefs[qid]
		for _, obj := range def.Objectives {
			if obj.Type != kind || obj.TargetID != targetID {
				continue
			}
			inst, ok := s.quests.Quest(qid)
			if !ok || inst.Status != types.QuestActive {
				break
			}
			remaining := 0
			for _, p := range inst.Objectives {
				if p.ID == obj.ID {
					remaining = p.Required - p.Progress
				}
			}
			if remaining <= 0 {
				continue
			}
			completed, err := s.quests.Advance(qid, obj.ID, min(remaining, amount))
			if err != nil {
				s.logger.Warn("recording objective progress", "quest_id", qid, "objective_id", obj.ID, "error", err)
				continue
			}
			if completed {
				s.onQuestCompleted(qid)
			}
		}
	}
}

func (s *Session) onQuestCompleted(questID string) {
	def, ok := s.questDefs[questID]
	if !ok {
		return
	}

	reward := Reward{
		Cinders:    def.Rewards.Cinders,
		XP:         def.Rewards.XP,
		Reputation: make(map[string]int, len(def.Rewards.Reputation)),
		Items:      def.Rewards.Items,
	}
	for _, r := range def.Rewards.Reputation {
		reward.Reputation[r.FactionID] += r.Amount
	}
	s.ApplyReward(reward)

	if oc := def.OnComplete; oc != nil {
		for _, f := range oc.SetFlags {
			s.SetFlag(f.ID, f.Value)
			if region, ok := gateRegion(f.ID); ok && f.Value {
				s.UnlockRegion(region)
			}
		}
		for _, r := range oc.UnlockRegions {
			s.UnlockRegion(r)
		}
	}

	s.log(fmt.Sprintf("Quest complete: %s.", def.Title))
	s.publish(types.EventQuestCompleted, map[string]any{"quest": questID})
	s.syncQuests()
}

// gateRegion maps a gate_<region>_unlocked flag to its region.
func gateRegion(flagID string) (string, bool) {
	if !strings.HasPrefix(flagID, "gate_") || !strings.HasSuffix(flagID, "_unlocked") {
		return "", false
	}
	region := strings.TrimSuffix(strings.TrimPrefix(flagID, "gate_"), "_unlocked")
	return region, region != ""
}

// ApplyReward grants cinders, experience, reputation and items in that order.
func (s *Session) ApplyReward(r Reward) {
	if r.Cinders > 0 {
		s.AddCinders(r.Cinders)
	}
	if r.XP > 0 {
		s.AwardXP(r.XP)
	}
	for _, f := range sortedKeys(r.Reputation) {
		s.AddReputation(f, r.Reputation[f])
	}
	for _, it := range r.Items {
		s.AddItem(it.ItemID, it.Amount)
	}
}

// Experience and currency

// AwardXP adds experience and applies every level-up it pays for.
func (s *Session) AwardXP(amount int) {
	s.stats.XP += max(0, amount)

	for s.stats.XP >= s.stats.XPToNext {
		s.stats.XP -= s.stats.XPToNext
		s.stats.Level++
		s.stats.XPToNext = baseline.NextXPToNext(s.stats.XPToNext)
		s.perks.AddPoints(1)
		s.stats.MaxHP += 6
		s.stats.HP = s.stats.MaxHP
		s.stats.MaxStamina += 4
		s.stats.Stamina = s.stats.MaxStamina
		s.log(fmt.Sprintf("Level up! Reached %d.", s.stats.Level))
		s.publish(types.EventLevelUp, map[string]any{"level": s.stats.Level})
	}

	s.recomputeDerivedStats()
}

// Cinders returns the currency balance.
func (s *Session) Cinders() int { return s.cinders }

// AddCinders adds currency. Negative amounts are ignored.
func (s *Session) AddCinders(amount int) {
	s.cinders += max(0, amount)
}

// SpendCinders deducts amount if the balance covers it.
func (s *Session) SpendCinders(amount int) bool {
	if s.cinders < amount {
		return false
	}
	s.cinders -= amount
	return true
}

// Perks

// PerkPoints returns the unspent perk points.
func (s *Session) PerkPoints() int { return s.perks.Points() }

// PerkRank returns the rank of a perk.
func (s *Session) PerkRank(perkID string) int { return s.perks.Rank(perkID) }

// PerkEffect returns the summed effect of every unlocked perk rank.
func (s *Session) PerkEffect(effectID string) float64 {
	return s.perks.Effects()[effectID]
}

// UnlockPerk spends a point on a perk rank and refreshes derived stats.
func (s *Session) UnlockPerk(perkID string) error {
	if err := s.perks.Unlock(perkID); err != nil {
		return err
	}
	def, _ := s.perks.Definition(perkID)
	s.log(fmt.Sprintf("Perk unlocked: %s rank %d.", def.Name, s.perks.Rank(perkID)))
	s.recomputeDerivedStats()
	return nil
}

// Stats

// Stats returns a copy of the player stats.
func (s *Session) Stats() types.PlayerStats { return s.stats }

// Stat reads a player stat by its JSON name. Cinders is readable too.
// Unknown stats are 0.
func (s *Session) Stat(id string) float64 {
	switch id {
	case "level":
		return float64(s.stats.Level)
	case "xp":
		return float64(s.stats.XP)
	case "xpToNext":
		return float64(s.stats.XPToNext)
	case "hp":
		return s.stats.HP
	case "maxHp":
		return s.stats.MaxHP
	case "stamina":
		return s.stats.Stamina
	case "maxStamina":
		return s.stats.MaxStamina
	case "attack":
		return float64(s.stats.Attack)
	case "defense":
		return float64(s.stats.Defense)
	case "crit":
		return s.stats.Crit
	case "moveSpeed":
		return s.stats.MoveSpeed
	case "cinders":
		return float64(s.cinders)
	default:
		return 0
	}
}

// recomputeDerivedStats rebuilds the stats that follow from level, perks
// and armor upgrades.
func (s *Session) recomputeDerivedStats() {
	base := baseline.Player()
	fx := s.perks.Effects()
	lvl := s.stats.Level - 1
	prevMaxStamina := s.stats.MaxStamina

	s.stats.MaxStamina = math.Max(30, base.MaxStamina+float64(lvl*4)+fx["maxStamina"])
	s.stats.Stamina = math.Min(s.stats.Stamina, s.stats.MaxStamina)
	s.stats.Attack = base.Attack + lvl*2 + int(fx["attack"])
	s.stats.Defense = base.Defense + lvl/2 + int(fx["defense"]) + s.upgrades.Armor*2
	s.stats.Crit = base.Crit + fx["crit"]
	s.stats.MoveSpeed = base.MoveSpeed

	if prevMaxStamina != s.stats.MaxStamina {
		s.log(fmt.Sprintf("Stamina capacity adjusted to %s.", formatFloat(s.stats.MaxStamina)))
	}
}
