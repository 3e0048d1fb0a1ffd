package config

const (
	// MaxHTMLBytes is the largest HTML body accepted for deserialization.
	// Articles with many embeds stay well under 1MB; 5MB leaves room for
	// inline data such as long footnote author lists.
	MaxHTMLBytes = 5 << 20

	// MaxTreeDepth bounds nesting of document nodes. The editor never
	// nests deeper than section > list > item > paragraph > inline, so
	// anything near this limit is malformed input.
	MaxTreeDepth = 64

	// MaxDataKeyLength is the maximum length of a node data key.
	MaxDataKeyLength = 64

	// DefaultNormalizeMaxPasses caps the normalizer fixpoint loop.
	DefaultNormalizeMaxPasses = 1000
)
