package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the record constructors and the condition and
// effect helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	b := &coll.bundle

	// Item "id" { ... } and the other record constructors are curried: the
	// first call takes the id, the second the record table.
	record(L, "Item", "id", &b.Items)
	record(L, "Enemy", "id", &b.Enemies)
	record(L, "LootTable", "id", &b.LootTables)
	record(L, "Quest", "id", &b.Quests)
	record(L, "Dialogue", "conversationId", &b.Dialogues)
	record(L, "Perk", "id", &b.Perks)
	record(L, "Recipe", "id", &b.Recipes)
	record(L, "Region", "id", &b.Regions)
}

func record(L *lua.LState, name, idKey string, dst *[]any) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			rec, _ := toGoValue(tbl).(map[string]any)
			if rec == nil {
				rec = map[string]any{}
			}
			rec[idKey] = id
			*dst = append(*dst, rec)
			return 0
		}))
		return 1
	}))
}

// tagged builds a helper that returns a {type = tag, ...} table from its
// positional arguments.
func tagged(L *lua.LState, name, tag string, keys ...string) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(tag))
		for i, k := range keys {
			tbl.RawSetString(k, L.CheckAny(i+1))
		}
		L.Push(tbl)
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	tagged(L, "FlagEquals", "flagEquals", "flagId", "equals")
	tagged(L, "StatAtLeast", "statAtLeast", "statId", "value")
	tagged(L, "ItemCountAtLeast", "itemCountAtLeast", "itemId", "value")
	tagged(L, "ReputationAtLeast", "reputationAtLeast", "factionId", "value")
	tagged(L, "QuestStatus", "questStatus", "questId", "status")
}

func registerEffectHelpers(L *lua.LState) {
	tagged(L, "SetFlag", "setFlag", "flagId", "value")
	tagged(L, "AddReputation", "addReputation", "factionId", "value")
	tagged(L, "AddItem", "addItem", "itemId", "amount")
	tagged(L, "StartQuest", "startQuest", "questId")
	tagged(L, "CompleteQuest", "completeQuest", "questId")
}

// toGoValue converts a Lua value to plain Go data. Tables with sequential
// integer keys become slices and empty tables become empty slices, since
// every optional content field that defaults to empty is an array.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		if len(m) == 0 {
			return []any{}
		}
		return m
	default:
		return nil
	}
}
