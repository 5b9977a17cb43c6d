// Package save implements the versioned save file format, forward
// migrations between versions, and the slot repository.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/ashaether/types"
)

// CurrentVersion is the save format written by this build.
const CurrentVersion = 3

// Versioned is any decoded save payload.
type Versioned interface {
	Version() int
}

// PlayerV1 is the player block of a version 1 save.
type PlayerV1 struct {
	Level   int     `json:"level"`
	HP      float64 `json:"hp"`
	MaxHP   float64 `json:"maxHp"`
	Cinders int     `json:"cinders"`
}

// PlayerV2 adds stamina to PlayerV1.
type PlayerV2 struct {
	PlayerV1
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"maxStamina"`
}

// FileV1 is the first save format.
type FileV1 struct {
	SaveVersion int                  `json:"saveVersion"`
	Timestamp   string               `json:"timestamp"`
	Player      PlayerV1             `json:"player"`
	Inventory   types.InventoryState `json:"inventory"`
	Quests      types.QuestState     `json:"quests"`
	WorldFlags  map[string]any       `json:"worldFlags"`
}

// FileV2 is FileV1 with stamina on the player.
type FileV2 struct {
	SaveVersion int                  `json:"saveVersion"`
	Timestamp   string               `json:"timestamp"`
	Player      PlayerV2             `json:"player"`
	Inventory   types.InventoryState `json:"inventory"`
	Quests      types.QuestState     `json:"quests"`
	WorldFlags  map[string]any       `json:"worldFlags"`
}

// File is the current save format: a whole session snapshot.
type File struct {
	SaveVersion int                   `json:"saveVersion"`
	Timestamp   string                `json:"timestamp"`
	Session     types.SessionSnapshot `json:"session"`
}

// Unknown is a payload whose version this build has no type for.
type Unknown struct {
	SaveVersion int
	Raw         json.RawMessage
}

func (f *FileV1) Version() int  { return f.SaveVersion }
func (f *FileV2) Version() int  { return f.SaveVersion }
func (f *File) Version() int    { return f.SaveVersion }
func (u *Unknown) Version() int { return u.SaveVersion }

// Decode parses a save payload into the type matching its saveVersion.
func Decode(data []byte) (Versioned, error) {
	var head struct {
		SaveVersion *int `json:"saveVersion"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if head.SaveVersion == nil {
		return nil, ErrMissingVersion
	}

	var v Versioned
	switch *head.SaveVersion {
	case 1:
		v = &FileV1{}
	case 2:
		v = &FileV2{}
	case CurrentVersion:
		v = &File{}
	default:
		return &Unknown{SaveVersion: *head.SaveVersion, Raw: json.RawMessage(data)}, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode save v%d: %w", *head.SaveVersion, err)
	}
	if f, ok := v.(*File); ok {
		normalize(&f.Session)
	}
	return v, nil
}

// Encode serializes a current-version save.
func Encode(f *File) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// normalize ensures maps and slices are never nil after load.
func normalize(s *types.SessionSnapshot) {
	if s.WorldFlags == nil {
		s.WorldFlags = map[string]any{}
	}
	if s.Reputations == nil {
		s.Reputations = map[string]int{}
	}
	if s.Quests.Flags == nil {
		s.Quests.Flags = map[string]bool{}
	}
	if s.Perks.Ranks == nil {
		s.Perks.Ranks = map[string]int{}
	}
	if s.Shop.StockByListingID == nil {
		s.Shop.StockByListingID = map[string]int{}
	}
	if s.EventLog == nil {
		s.EventLog = []string{}
	}
}
