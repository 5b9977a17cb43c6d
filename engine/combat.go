package engine

import (
	"fmt"
	"math"

	"github.com/nathoo/ashaether/engine/economy"
	"github.com/nathoo/ashaether/engine/upgrades"
	"github.com/nathoo/ashaether/types"
)

const (
	baseStaminaRegen = 12.0
	blockMultiplier  = 0.55
)

// IsAlive reports whether the warden has hp left.
func (s *Session) IsAlive() bool { return s.stats.HP > 0 }

// WeaponMode returns the active weapon stance.
func (s *Session) WeaponMode() string { return s.equipment.WeaponMode }

// SetWeaponMode switches the weapon stance.
func (s *Session) SetWeaponMode(mode string) {
	s.equipment.WeaponMode = mode
	s.log(fmt.Sprintf("Weapon stance switched: %s.", mode))
}

// Equipment returns a copy of the equipped items.
func (s *Session) Equipment() types.Equipment { return s.equipment }

// AttackPower is the damage of an attack with the given base damage.
func (s *Session) AttackPower(base int) int {
	return base + s.stats.Attack + upgrades.AttackBonus(s.upgrades.Weapon)
}

// CritChance is the chance of a critical hit.
func (s *Session) CritChance() float64 { return s.stats.Crit }

// ReceiveDamage applies an incoming hit after defense and blocking and
// returns the damage taken. Every hit deals at least 1.
func (s *Session) ReceiveDamage(amount float64, blocked bool) float64 {
	dealt := s.mitigate(amount, blocked)
	s.stats.HP = math.Max(0, s.stats.HP-dealt)
	if s.stats.HP <= 0 {
		s.log("Warden has fallen.")
		s.publish(types.EventPlayerDefeated, nil)
	}
	return dealt
}

// mitigate applies defense and blocking to an incoming hit.
func (s *Session) mitigate(amount float64, blocked bool) float64 {
	dealt := math.Max(1, amount-math.Floor(float64(s.stats.Defense)*0.25))
	if blocked {
		dealt *= blockMultiplier - s.PerkEffect("blockMitigation")
		dealt = math.Max(1, math.Floor(dealt))
	}
	return dealt
}

// Heal restores hp up to the maximum.
func (s *Session) Heal(amount float64) {
	s.stats.HP = math.Min(s.stats.MaxHP, s.stats.HP+amount)
}

// SpendStamina deducts stamina if there is enough.
func (s *Session) SpendStamina(amount float64) bool {
	if s.stats.Stamina < amount {
		return false
	}
	s.stats.Stamina -= amount
	return true
}

// RegenStamina recovers stamina over deltaSeconds.
func (s *Session) RegenStamina(deltaSeconds float64) {
	regen := baseStaminaRegen + s.PerkEffect("staminaRegen")
	s.stats.Stamina = math.Min(s.stats.MaxStamina, s.stats.Stamina+regen*deltaSeconds)
}

// RestAtCheckpoint restores hp and stamina.
func (s *Session) RestAtCheckpoint() {
	s.stats.HP = s.stats.MaxHP
	s.stats.Stamina = s.stats.MaxStamina
	s.log("Rested at checkpoint.")
}

// DefeatEnemy records a kill, rolls the enemy's loot table on the session
// RNG and stores the drops. It returns the drops rolled.
func (s *Session) DefeatEnemy(enemyID string) ([]economy.Drop, error) {
	def, ok := s.enemies[enemyID]
	if !ok {
		return nil, fmt.Errorf("enemy %s: %w", enemyID, ErrUnknownEnemy)
	}

	s.log(fmt.Sprintf("Defeated %s.", def.Name))
	s.RecordObjectiveProgress("kill", enemyID, 1)

	drops := s.loot.Roll(def.LootTableID, s.rng)
	for _, d := range drops {
		s.AddItem(d.ItemID, d.Amount)
	}
	s.logger.Debug("loot rolled",
		"enemy_id", enemyID,
		"table_id", def.LootTableID,
		"drops", len(drops),
		"rng_position", s.rng.Position(),
	)
	return drops, nil
}
