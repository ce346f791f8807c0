package extract

// Replacement rewrites a whole-word phrase (case-insensitive) to a plainer one
type Replacement struct {
	Phrase string
	With   string
}

// ReplacementTable is the ordered plain-language substitution table used for the lowest
// reading-grade tier. Each pair is applied once per sentence, in table order.
var ReplacementTable = []Replacement{
	{Phrase: "utilize", With: "use"},
	{Phrase: "commence", With: "start"},
	{Phrase: "terminate", With: "end"},
	{Phrase: "purchase", With: "buy"},
	{Phrase: "subsequent", With: "next"},
	{Phrase: "prior to", With: "before"},
	{Phrase: "in order to", With: "to"},
	{Phrase: "notwithstanding", With: "despite"},
	{Phrase: "facilitate", With: "help"},
	{Phrase: "demonstrate", With: "show"},
	{Phrase: "additional", With: "more"},
	{Phrase: "require", With: "need"},
	{Phrase: "obtain", With: "get"},
	{Phrase: "provide", With: "give"},
	{Phrase: "assist", With: "help"},
}

// ActionCues flag a sentence as an obligation. Entries are regular-expression
// fragments matched case-insensitively as whole words.
var ActionCues = []string{
	"must", "should", `need to`, "required", "please", "due", `by\s+\w+`,
	"submit", "pay", "complete", "bring", "provide", "sign",
}

// LineActionCues is the cue set for OCR lines. Unlike ActionCues it has no
// "by <word>" cue, which fires on almost every scanned letterhead.
var LineActionCues = []string{
	"must", "should", `need to`, "required", "please", "due",
	"submit", "pay", "complete", "bring", "provide", "sign",
}

// ProsVocabulary marks a sentence as a benefit (regexp fragments, whole word)
var ProsVocabulary = []string{
	"benefit", "improve", "support", "enable", "opportunity",
	"increase", "protect", "help", `reduce costs?`,
}

// ConsVocabulary marks a sentence as a drawback (regexp fragments, whole word)
var ConsVocabulary = []string{
	"risk", "concern", "cost", "harm", "limit",
	"reduce", "decrease", "burden", "challenge", "problem",
}

// CivicEntities are the known stakeholder names, matched case-sensitively as whole words.
// Declaration order is result order.
var CivicEntities = []string{
	"Residents", "Students", "Teachers", "Parents", "Small Businesses", "Nonprofits",
	"City Council", "County Board", "State Agencies", "Vendors", "Taxpayers",
}

// Vocabulary bundles every table an Extractor matches against
type Vocabulary struct {
	Replacements  []Replacement
	ActionCues    []string
	Pros          []string
	Cons          []string
	CivicEntities []string
}

// DefaultVocabulary returns the built-in tables
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Replacements:  ReplacementTable,
		ActionCues:    ActionCues,
		Pros:          ProsVocabulary,
		Cons:          ConsVocabulary,
		CivicEntities: CivicEntities,
	}
}
