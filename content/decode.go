package content

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nathoo/ashaether/types"
)

var (
	conditionType = reflect.TypeOf((*types.Condition)(nil)).Elem()
	effectType    = reflect.TypeOf((*types.Effect)(nil)).Elem()
)

var conditionVariants = map[string]func() any{
	"flagEquals":        func() any { return &types.FlagEquals{} },
	"statAtLeast":       func() any { return &types.StatAtLeast{} },
	"itemCountAtLeast":  func() any { return &types.ItemCountAtLeast{} },
	"reputationAtLeast": func() any { return &types.ReputationAtLeast{} },
	"questStatus":       func() any { return &types.QuestStatusIs{} },
}

var effectVariants = map[string]func() any{
	"setFlag":       func() any { return &types.SetFlag{} },
	"addReputation": func() any { return &types.AddReputation{} },
	"addItem":       func() any { return &types.AddItem{} },
	"startQuest":    func() any { return &types.StartQuest{} },
	"completeQuest": func() any { return &types.CompleteQuest{} },
}

// decode copies a normalized record into out using the json field names.
func decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: variantHook,
		Result:     out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// variantHook builds condition and effect variants from their "type" tag.
func variantHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case conditionType:
		return decodeVariant(data, conditionVariants)
	case effectType:
		return decodeVariant(data, effectVariants)
	default:
		return data, nil
	}
}

func decodeVariant(data any, variants map[string]func() any) (any, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	tag, _ := m["type"].(string)
	newVariant, ok := variants[tag]
	if !ok {
		return nil, fmt.Errorf("unknown variant type %q", tag)
	}
	ptr := newVariant()
	if err := decode(m, ptr); err != nil {
		return nil, err
	}
	return reflect.ValueOf(ptr).Elem().Interface(), nil
}

// decodeAll decodes every normalized row of a category.
func decodeAll[T any](rows []any) ([]T, error) {
	out := make([]T, len(rows))
	for i, row := range rows {
		if err := decode(row, &out[i]); err != nil {
			return nil, fmt.Errorf("[%d] %w", i, err)
		}
	}
	return out, nil
}
