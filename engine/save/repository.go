package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nathoo/ashaether/engine/baseline"
	"github.com/nathoo/ashaether/types"
)

const (
	// SlotCount is the number of save slots.
	SlotCount = 3

	slotPrefix = "ash-aether-save-slot"

	// Corrupted is the timestamp ListSlots reports for unreadable slots.
	Corrupted = "corrupted"
)

// ErrSlotOutOfRange is returned for slot ids outside [0, SlotCount).
var ErrSlotOutOfRange = errors.New("save slot index is out of range")

// Store is a string-keyed blob store holding one save per key. Each Set must
// be atomic for its key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SlotInfo describes one save slot.
type SlotInfo struct {
	Slot      int
	Exists    bool
	Timestamp string
	Level     int
}

// Repository reads and writes save slots.
type Repository struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewRepository creates a repository over store.
func NewRepository(store Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger, now: time.Now}
}

// SlotKey returns the store key of a slot.
func SlotKey(slot int) string {
	return fmt.Sprintf("%s-%d", slotPrefix, slot)
}

// Load reads and migrates a slot. An empty slot returns nil and no error.
func (r *Repository) Load(ctx context.Context, slot int) (*File, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	data, ok, err := r.store.Get(ctx, SlotKey(slot))
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %d: %w", slot, err)
	}
	if !ok {
		return nil, nil
	}

	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	f, err := Migrate(v)
	if err != nil {
		return nil, err
	}
	if v.Version() != CurrentVersion {
		r.logger.Info("migrated save", "slot", slot, "from", v.Version(), "to", CurrentVersion)
	}
	return f, nil
}

// Save writes session to a slot at the current version, stamping the time.
func (r *Repository) Save(ctx context.Context, slot int, session types.SessionSnapshot) (*File, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	ts := r.now().UTC().Format(baseline.TimestampLayout)
	session.Timestamp = ts
	f := &File{SaveVersion: CurrentVersion, Timestamp: ts, Session: session}

	data, err := Encode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slot %d: %w", slot, err)
	}
	if err := r.store.Set(ctx, SlotKey(slot), data); err != nil {
		return nil, fmt.Errorf("failed to write slot %d: %w", slot, err)
	}
	r.logger.Debug("saved slot", "slot", slot, "session", session.ID)
	return f, nil
}

// Clear deletes a slot.
func (r *Repository) Clear(ctx context.Context, slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, SlotKey(slot)); err != nil {
		return fmt.Errorf("failed to clear slot %d: %w", slot, err)
	}
	return nil
}

// ListSlots describes every slot. A slot that fails to decode or migrate is
// reported with the Corrupted timestamp instead of failing the listing.
func (r *Repository) ListSlots(ctx context.Context) ([]SlotInfo, error) {
	out := make([]SlotInfo, 0, SlotCount)
	for slot := range SlotCount {
		data, ok, err := r.store.Get(ctx, SlotKey(slot))
		if err != nil {
			return nil, fmt.Errorf("failed to read slot %d: %w", slot, err)
		}
		info := SlotInfo{Slot: slot, Exists: ok}
		if ok {
			if f, err := decodeAndMigrate(data); err != nil {
				r.logger.Warn("corrupted save slot", "slot", slot, "error", err)
				info.Timestamp = Corrupted
			} else {
				info.Timestamp = f.Timestamp
				info.Level = f.Session.Player.Level
			}
		}
		out = append(out, info)
	}
	return out, nil
}

func decodeAndMigrate(data []byte) (*File, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Migrate(v)
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= SlotCount {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	return nil
}
