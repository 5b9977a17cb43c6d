package save

import (
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/nathoo/ashaether/engine/baseline"
	"github.com/nathoo/ashaether/engine/inventory"
	"github.com/nathoo/ashaether/types"
)

var (
	// ErrMissingVersion is returned by Decode for payloads without saveVersion.
	ErrMissingVersion = errors.New("decode save: missing saveVersion")
	// ErrNoMigrationPath is returned for older versions no step upgrades.
	ErrNoMigrationPath = errors.New("no migration path")
	// ErrFutureVersion is returned for versions newer than CurrentVersion.
	ErrFutureVersion = errors.New("unsupported future save version")
	// ErrCorrupted is returned for saves whose values cannot be restored.
	ErrCorrupted = errors.New("corrupted save")
)

// sessionNamespace seeds the ids of sessions synthesized from old saves.
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ashaether.dev/save"))

// step upgrades a payload by exactly one version.
type step func(Versioned) (Versioned, error)

// migrations is keyed by the version a step upgrades from.
var migrations = map[int]step{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
}

// Migrate upgrades v to CurrentVersion one step at a time. A current save is
// returned as is.
func Migrate(v Versioned) (*File, error) {
	cur := v
	for cur.Version() < CurrentVersion {
		from := cur.Version()
		fn, ok := migrations[from]
		if !ok {
			return nil, fmt.Errorf("%w from saveVersion=%d", ErrNoMigrationPath, from)
		}
		next, err := fn(cur)
		if err != nil {
			return nil, fmt.Errorf("migrate saveVersion=%d: %w", from, err)
		}
		cur = next
	}

	if cur.Version() != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrFutureVersion, cur.Version())
	}
	f, ok := cur.(*File)
	if !ok {
		return nil, fmt.Errorf("saveVersion=%d payload has type %T", CurrentVersion, cur)
	}
	if err := checkSession(f.Session); err != nil {
		return nil, err
	}
	return f, nil
}

// checkSession rejects values a session cannot be rebuilt from.
func checkSession(s types.SessionSnapshot) error {
	if err := inventory.CheckState(s.Inventory); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if p := s.RNG.Position; p < 0 || p > baseline.MaxRNGPosition {
		return fmt.Errorf("%w: rng position %d", ErrCorrupted, p)
	}
	return nil
}

func migrateV1ToV2(v Versioned) (Versioned, error) {
	in, ok := v.(*FileV1)
	if !ok {
		return nil, fmt.Errorf("expected v1 payload, got %T", v)
	}
	return &FileV2{
		SaveVersion: 2,
		Timestamp:   in.Timestamp,
		Player: PlayerV2{
			PlayerV1:   in.Player,
			Stamina:    100,
			MaxStamina: 100,
		},
		Inventory:  in.Inventory,
		Quests:     in.Quests,
		WorldFlags: maps.Clone(in.WorldFlags),
	}, nil
}

// migrateV2ToV3 wraps the v2 fields in a session snapshot, filling the stats,
// loadout, perks, factions and regions v2 never stored with new-game values.
func migrateV2ToV3(v Versioned) (Versioned, error) {
	in, ok := v.(*FileV2)
	if !ok {
		return nil, fmt.Errorf("expected v2 payload, got %T", v)
	}

	player := baseline.Player()
	player.Level = max(1, in.Player.Level)
	player.XPToNext = baseline.XPToNext(player.Level)
	player.HP = in.Player.HP
	player.MaxHP = in.Player.MaxHP
	player.Stamina = in.Player.Stamina
	player.MaxStamina = in.Player.MaxStamina

	id := uuid.NewSHA1(sessionNamespace, []byte(in.Timestamp))
	flags := maps.Clone(in.WorldFlags)
	if flags == nil {
		flags = map[string]any{}
	}
	quests := in.Quests
	if quests.Flags == nil {
		quests.Flags = map[string]bool{}
	}

	return &File{
		SaveVersion: 3,
		Timestamp:   in.Timestamp,
		Session: types.SessionSnapshot{
			ID:          id,
			Player:      player,
			Cinders:     in.Player.Cinders,
			Equipment:   baseline.Equipment(),
			Inventory:   in.Inventory,
			Quests:      quests,
			WorldFlags:  flags,
			Reputations: baseline.Reputations(),
			Perks:       baseline.Perks(),
			Regions:     baseline.Regions(),
			Shop:        baseline.Shop(),
			RNG:         types.RNGState{Seed: baseline.SeedFor(id)},
			EventLog:    []string{},
			Timestamp:   in.Timestamp,
		},
	}, nil
}
