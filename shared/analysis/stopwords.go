package analysis

// stopwords are excluded from word-frequency ranking so the chart surfaces
// content words instead of glue words. Contracted forms appear without
// apostrophes because normalization strips them.
var stopwords = map[string]bool{
	"about": true, "after": true, "again": true, "all": true, "also": true,
	"am": true, "an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "before": true,
	"being": true, "but": true, "by": true, "can": true, "cant": true,
	"could": true, "did": true, "didnt": true, "do": true, "does": true,
	"doing": true, "dont": true, "down": true, "for": true, "from": true,
	"get": true, "got": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "here": true, "him": true, "his": true,
	"how": true, "if": true, "im": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "ive": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true,
	"not": true, "now": true, "of": true, "on": true, "one": true,
	"only": true, "or": true, "other": true, "our": true, "out": true,
	"over": true, "she": true, "so": true, "some": true, "than": true,
	"that": true, "thats": true, "the": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "to": true, "too": true, "up": true, "us": true,
	"very": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "which": true, "who": true, "why": true, "will": true,
	"with": true, "would": true, "you": true, "your": true, "youre": true,
}
