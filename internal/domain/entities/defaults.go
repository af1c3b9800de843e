package entities

// Built-in dictionary categories.
const (
	CategoryAttribute = "attribute"
	CategorySkill     = "skill"
)

// Attribute and Skill classification tags.
const (
	TagMental     = "Mental"
	TagPhysical   = "Physical"
	TagSocial     = "Social"
	TagForce      = "Force"
	TagFinesse    = "Finesse"
	TagResistance = "Resistance"
)

func attr(name, area, role string) DictionaryEntry {
	return DictionaryEntry{
		Category: CategoryAttribute,
		Name:     name,
		Tags:     []string{area, role},
		Values:   Range(AttributeMin, AttributeCeiling),
	}
}

func skill(name, area string) DictionaryEntry {
	return DictionaryEntry{
		Category: CategorySkill,
		Name:     name,
		Tags:     []string{area},
		Values:   Range(DefaultNumericMin, DefaultNumericMax),
	}
}

// DefaultAttributeEntries are the nine Attributes, seeded on init.
// These cannot be removed by users.
var DefaultAttributeEntries = []DictionaryEntry{
	attr("Strength", TagPhysical, TagForce),
	attr("Dexterity", TagPhysical, TagFinesse),
	attr("Stamina", TagPhysical, TagResistance),
	attr("Charisma", TagSocial, TagForce),
	attr("Manipulation", TagSocial, TagFinesse),
	attr("Composure", TagSocial, TagResistance),
	attr("Intelligence", TagMental, TagForce),
	attr("Wits", TagMental, TagFinesse),
	attr("Resolve", TagMental, TagResistance),
}

// DefaultSkillEntries are the core Skills. Unlike Attributes they may be
// removed or replaced by an import.
var DefaultSkillEntries = []DictionaryEntry{
	skill("Academics", TagMental),
	skill("Computer", TagMental),
	skill("Crafts", TagMental),
	skill("Investigation", TagMental),
	skill("Medicine", TagMental),
	skill("Occult", TagMental),
	skill("Politics", TagMental),
	skill("Science", TagMental),
	skill("Athletics", TagPhysical),
	skill("Brawl", TagPhysical),
	skill("Drive", TagPhysical),
	skill("Firearms", TagPhysical),
	skill("Larceny", TagPhysical),
	skill("Stealth", TagPhysical),
	skill("Survival", TagPhysical),
	skill("Weaponry", TagPhysical),
	skill("Animal Ken", TagSocial),
	skill("Empathy", TagSocial),
	skill("Expression", TagSocial),
	skill("Intimidation", TagSocial),
	skill("Persuasion", TagSocial),
	skill("Socialize", TagSocial),
	skill("Streetwise", TagSocial),
	skill("Subterfuge", TagSocial),
}

// AttributeDictionary is the built-in, read-only Attribute dictionary.
var AttributeDictionary = mustDictionary(CategoryAttribute, DefaultAttributeEntries)

// SkillDictionary is the built-in Skill dictionary.
var SkillDictionary = mustDictionary(CategorySkill, DefaultSkillEntries)

// DefaultEntries returns every built-in entry, Attributes first.
func DefaultEntries() []DictionaryEntry {
	out := make([]DictionaryEntry, 0, len(DefaultAttributeEntries)+len(DefaultSkillEntries))
	out = append(out, DefaultAttributeEntries...)
	return append(out, DefaultSkillEntries...)
}

// IsProtectedEntry reports whether an entry is a built-in Attribute, which
// must never be removed.
func IsProtectedEntry(category, name string) bool {
	if NormalizeCategory(category) != CategoryAttribute {
		return false
	}
	_, ok := AttributeDictionary.Lookup(name)
	return ok
}
