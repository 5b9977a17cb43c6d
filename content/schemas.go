package content

var (
	conditionSchema = tagged().
			variant("flagEquals", req("flagId", nonEmpty()), req("equals", union(str(), num(), boolean()))).
			variant("statAtLeast", req("statId", nonEmpty()), req("value", num())).
			variant("itemCountAtLeast", req("itemId", nonEmpty()), req("value", num().integer().min(0))).
			variant("reputationAtLeast", req("factionId", nonEmpty()), req("value", num().integer())).
			variant("questStatus", req("questId", nonEmpty()), req("status", enum("locked", "available", "active", "completed", "failed")))

	effectSchema = tagged().
			variant("setFlag", req("flagId", nonEmpty()), req("value", union(str(), num(), boolean()))).
			variant("addReputation", req("factionId", nonEmpty()), req("value", num().integer())).
			variant("addItem", req("itemId", nonEmpty()), req("amount", num().integer().positive())).
			variant("startQuest", req("questId", nonEmpty())).
			variant("completeQuest", req("questId", nonEmpty()))
)

var itemSchema = obj(
	req("id", nonEmpty()),
	req("name", nonEmpty()),
	req("description", nonEmpty()),
	req("icon", nonEmpty()),
	req("type", enum("consumable", "material", "weapon", "armor", "quest", "key")),
	req("rarity", enum("Common", "Uncommon", "Rare", "Relic")),
	req("stackSize", num().integer().min(1).max(999)),
	req("value", num().integer().min(0)),
	opt("statsModifiers", obj(
		opt("attack", num().integer()),
		opt("defense", num().integer()),
		opt("crit", num().min(0)),
		opt("moveSpeed", num().min(0)),
	)),
	withDefault("tags", arr(str())),
	opt("useEffect", obj(
		opt("heal", num().integer().min(0)),
		opt("stamina", num().integer().min(0)),
		opt("buffId", str()),
		opt("durationSeconds", num().positive()),
	)),
)

var enemySchema = obj(
	req("id", nonEmpty()),
	req("name", nonEmpty()),
	req("hp", num().integer().positive()),
	req("attack", num().integer().min(0)),
	req("defense", num().integer().min(0)),
	req("speed", num().positive()),
	req("lootTableId", nonEmpty()),
	req("aiProfileId", nonEmpty()),
	req("animations", obj(
		req("idle", nonEmpty()),
		req("walk", nonEmpty()),
		req("attack", nonEmpty()),
		req("hurt", nonEmpty()),
		req("death", nonEmpty()),
	)),
	req("hitbox", obj(
		req("width", num().positive()),
		req("height", num().positive()),
		req("offsetX", num()),
		req("offsetY", num()),
	)),
)

var lootTableSchema = obj(
	req("id", nonEmpty()),
	req("entries", arr(obj(
		req("itemId", nonEmpty()),
		req("chance", num().min(0).max(1)),
		req("minAmount", num().integer().min(1)),
		req("maxAmount", num().integer().min(1)),
	).refine(func(e map[string]any) bool {
		return e["maxAmount"].(float64) >= e["minAmount"].(float64)
	}, "maxAmount", "maxAmount must be greater than or equal to minAmount")).nonEmpty()),
)

var questSchema = obj(
	req("id", nonEmpty()),
	req("title", nonEmpty()),
	req("description", nonEmpty()),
	req("category", enum("main", "side", "faction", "bounty", "exploration")),
	opt("prerequisites", obj(
		withDefault("flags", arr(obj(req("id", nonEmpty()), req("equals", boolean())))),
		withDefault("quests", arr(nonEmpty())),
	)),
	req("objectives", arr(obj(
		req("id", nonEmpty()),
		req("type", enum("kill", "collect", "talk", "enter_zone", "solve_puzzle")),
		req("targetId", nonEmpty()),
		req("required", num().integer().positive()),
	)).nonEmpty()),
	req("rewards", obj(
		withDefault("items", arr(obj(req("itemId", nonEmpty()), req("amount", num().integer().positive())))),
		req("cinders", num().integer().min(0)),
		req("xp", num().integer().min(0)),
		withDefault("reputation", arr(obj(req("factionId", nonEmpty()), req("amount", num().integer())))),
	)),
	opt("onComplete", obj(
		withDefault("setFlags", arr(obj(req("id", nonEmpty()), req("value", boolean())))),
		withDefault("unlockRegions", arr(nonEmpty())),
	)),
)

var choiceSchema = obj(
	req("id", nonEmpty()),
	req("text", nonEmpty()),
	req("nextNodeId", nonEmpty()),
	withDefault("conditions", arr(conditionSchema)),
	withDefault("effects", arr(effectSchema)),
)

var dialogueSchema = obj(
	req("conversationId", nonEmpty()),
	req("nodes", arr(obj(
		req("id", nonEmpty()),
		req("speakerId", nonEmpty()),
		opt("portrait", str()),
		req("text", nonEmpty()),
		withDefault("tags", arr(str())),
		withDefault("conditions", arr(conditionSchema)),
		withDefault("effects", arr(effectSchema)),
		withDefault("choices", arr(choiceSchema)),
	)).nonEmpty()),
)

var perkSchema = obj(
	req("id", nonEmpty()),
	req("branch", enum("Warden", "Echo", "Foundry")),
	req("name", nonEmpty()),
	req("description", nonEmpty()),
	req("maxRank", num().integer().positive()),
	req("effects", record(num())),
)

var recipeSchema = obj(
	req("id", nonEmpty()),
	req("name", nonEmpty()),
	req("station", enum("foundry", "camp")),
	req("output", obj(
		req("itemId", nonEmpty()),
		req("amount", num().integer().positive()),
		req("maxStack", num().integer().positive()),
		req("tags", arr(enum("quest", "material", "consumable", "gear", "key"))),
	)),
	req("cost", arr(obj(
		req("itemId", nonEmpty()),
		req("amount", num().integer().positive()),
	))),
	req("cindersCost", num().integer().min(0)),
)

var regionSchema = obj(
	req("id", nonEmpty()),
	req("name", nonEmpty()),
	req("biome", enum("hub", "forest", "quarry", "marsh", "dungeon")),
	req("recommendedLevel", num().integer().positive()),
	withDefault("neighbors", arr(nonEmpty())),
	req("signaturePuzzle", nonEmpty()),
)
