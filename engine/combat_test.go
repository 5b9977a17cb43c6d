package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nathoo/ashaether/engine/upgrades"
	"github.com/nathoo/ashaether/types"
)

func TestReceiveDamage_Basic(t *testing.T) {
	s := newTestSession(t)

	// Defense 6 soaks floor(1.5) = 1.
	if got := s.ReceiveDamage(10, false); got != 9 {
		t.Errorf("damage = %v, want 9", got)
	}
	if s.Stats().HP != 91 {
		t.Errorf("hp = %v, want 91", s.Stats().HP)
	}
}

func TestReceiveDamage_Blocked(t *testing.T) {
	s := newTestSession(t)

	if got := s.ReceiveDamage(10, true); got != 4 {
		t.Errorf("blocked damage = %v, want 4", got)
	}
}

func TestReceiveDamage_MinimumOne(t *testing.T) {
	s := newTestSession(t)

	if got := s.ReceiveDamage(0.5, false); got != 1 {
		t.Errorf("damage = %v, want 1", got)
	}
	if got := s.ReceiveDamage(1, true); got != 1 {
		t.Errorf("blocked damage = %v, want 1", got)
	}
}

func TestReceiveDamage_ArmorUpgradeAddsDefense(t *testing.T) {
	s := newTestSession(t)
	s.SetUpgradeLevel(upgrades.Armor, 2)

	// Defense 10 soaks floor(2.5) = 2.
	if s.Stats().Defense != 10 {
		t.Fatalf("defense = %d", s.Stats().Defense)
	}
	if got := s.ReceiveDamage(10, false); got != 8 {
		t.Errorf("damage = %v, want 8", got)
	}
}

func TestReceiveDamage_Lethal(t *testing.T) {
	s := newTestSession(t)

	var defeated int
	s.Subscribe(types.EventPlayerDefeated, func(types.Event) { defeated++ })

	s.ReceiveDamage(500, false)
	if s.IsAlive() || s.Stats().HP != 0 {
		t.Errorf("hp = %v, want 0", s.Stats().HP)
	}
	if s.Events()[0] != "Warden has fallen." {
		t.Errorf("events = %q", s.Events())
	}
	if defeated != 1 {
		t.Errorf("defeat events = %d", defeated)
	}

	s.RestAtCheckpoint()
	if !s.IsAlive() || s.Stats().HP != s.Stats().MaxHP {
		t.Errorf("rest did not restore hp: %v", s.Stats().HP)
	}
}

func TestUseItem(t *testing.T) {
	s := newTestSession(t)
	s.ReceiveDamage(51, false)

	if err := s.UseItem("consumable_heal_small"); err != nil {
		t.Fatal(err)
	}
	if s.Stats().HP != 85 {
		t.Errorf("hp = %v, want 85", s.Stats().HP)
	}
	if s.CountItem("consumable_heal_small") != 3 {
		t.Errorf("tinctures = %d", s.CountItem("consumable_heal_small"))
	}
	if s.Events()[0] != "Used Cloudleaf Tincture." {
		t.Errorf("events = %q", s.Events())
	}

	if err := s.UseItem("material_iron_ore"); !errors.Is(err, ErrNotUsable) {
		t.Errorf("err = %v, want ErrNotUsable", err)
	}
	if err := s.UseItem("consumable_stamina_vial"); !errors.Is(err, ErrItemMissing) {
		t.Errorf("err = %v, want ErrItemMissing", err)
	}
}

func TestUseItem_StaminaCapsAtMax(t *testing.T) {
	s := newTestSession(t)
	s.AddItem("consumable_stamina_vial", 1)
	s.SpendStamina(20)

	if err := s.UseItem("consumable_stamina_vial"); err != nil {
		t.Fatal(err)
	}
	if s.Stats().Stamina != s.Stats().MaxStamina {
		t.Errorf("stamina = %v, want %v", s.Stats().Stamina, s.Stats().MaxStamina)
	}
}

func TestStamina_SpendAndRegen(t *testing.T) {
	s := newTestSession(t)

	if !s.SpendStamina(60) {
		t.Fatal("spend 60 of 100 refused")
	}
	if s.SpendStamina(50) {
		t.Error("spend beyond remaining stamina accepted")
	}
	s.RegenStamina(2)
	if s.Stats().Stamina != 64 {
		t.Errorf("stamina = %v, want 64", s.Stats().Stamina)
	}
	s.RegenStamina(100)
	if s.Stats().Stamina != 100 {
		t.Errorf("stamina = %v, want capped at 100", s.Stats().Stamina)
	}
}

func TestAttackPowerAndCrit(t *testing.T) {
	s := newTestSession(t)

	if got := s.AttackPower(10); got != 22 {
		t.Errorf("attack power = %d, want 22", got)
	}
	s.SetUpgradeLevel(upgrades.Weapon, 2)
	if got := s.AttackPower(10); got != 28 {
		t.Errorf("attack power = %d, want 28", got)
	}
	s.SetUpgradeLevel(upgrades.Weapon, 9)
	if s.Upgrades().Weapon != upgrades.MaxLevel {
		t.Errorf("weapon level = %d, want clamped", s.Upgrades().Weapon)
	}

	s.AwardXP(100)
	if err := s.UnlockPerk("echo_long_recall"); err != nil {
		t.Fatal(err)
	}
	if got := s.CritChance(); got < 0.0799 || got > 0.0801 {
		t.Errorf("crit = %v, want 0.08", got)
	}
}

func TestSetWeaponMode(t *testing.T) {
	s := newTestSession(t)
	s.SetWeaponMode("glaive")

	if s.WeaponMode() != "glaive" || s.Equipment().WeaponMode != "glaive" {
		t.Errorf("mode = %q", s.WeaponMode())
	}
}

func TestDefeatEnemy_Deterministic(t *testing.T) {
	c := testContent(t)
	roll := func() []string {
		s := NewSession(c, nil, Options{Seed: 99})
		var got []string
		for range 5 {
			drops, err := s.DefeatEnemy("gloam_wisp")
			if err != nil {
				t.Fatal(err)
			}
			for _, d := range drops {
				got = append(got, d.ItemID)
			}
		}
		return got
	}

	if a, b := roll(), roll(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed rolled different loot:\n %v\n %v", a, b)
	}
}

func TestDefeatEnemy_GuaranteedDrops(t *testing.T) {
	s := newTestSession(t)

	drops, err := s.DefeatEnemy("hollow_hart")
	if err != nil {
		t.Fatal(err)
	}
	if len(drops) < 2 || drops[0].ItemID != "material_hart_antler" || drops[1].ItemID != "key_anchor_dust" {
		t.Fatalf("drops = %+v", drops)
	}
	if s.CountItem("material_hart_antler") != 1 {
		t.Errorf("antlers = %d", s.CountItem("material_hart_antler"))
	}
	if dust := s.CountItem("key_anchor_dust"); dust < 3 || dust > 4 {
		t.Errorf("anchor dust = %d, want 3..4", dust)
	}
	if s.Snapshot().RNG.Position == 0 {
		t.Error("rng position did not advance")
	}
}

func TestDefeatEnemy_Unknown(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.DefeatEnemy("dragon"); !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("err = %v", err)
	}
}

func TestDefeatEnemy_RestoredSessionContinuesSequence(t *testing.T) {
	c := testContent(t)
	s := NewSession(c, nil, Options{Seed: 5})
	if _, err := s.DefeatEnemy("quarry_brute"); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()

	want, _ := s.DefeatEnemy("quarry_brute")
	got, _ := NewSession(c, &snap, Options{}).DefeatEnemy("quarry_brute")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restored roll = %+v, want %+v", got, want)
	}
}
