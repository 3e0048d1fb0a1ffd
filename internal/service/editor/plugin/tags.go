package plugin

// TagAction is what the deserializer does with an ordinary HTML element.
type TagAction int

const (
	// ActionMap turns the element into a node of TagPolicy.NodeType.
	ActionMap TagAction = iota
	// ActionUnwrap drops the element but keeps its children in place.
	ActionUnwrap
	// ActionDrop removes the element together with its content.
	ActionDrop
)

func (a TagAction) String() string {
	switch a {
	case ActionMap:
		return "map"
	case ActionUnwrap:
		return "unwrap"
	case ActionDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// TagPolicy is the fixed handling of one tag name.
type TagPolicy struct {
	Action   TagAction
	NodeType string
}

func mapTo(nodeType string) TagPolicy { return TagPolicy{Action: ActionMap, NodeType: nodeType} }

var (
	unwrap = TagPolicy{Action: ActionUnwrap}
	drop   = TagPolicy{Action: ActionDrop}
)

// tagPolicies is the lookup table for every tag the dialect knows about.
// Inline formatting is not part of the document model and is unwrapped.
// Tags missing from the table are unwrapped as well, but logged.
var tagPolicies = map[string]TagPolicy{
	"section":    mapTo(SectionType),
	"p":          mapTo(ParagraphType),
	"h1":         mapTo(HeadingType),
	"h2":         mapTo(HeadingType),
	"h3":         mapTo(HeadingType),
	"h4":         mapTo(HeadingType),
	"h5":         mapTo(HeadingType),
	"h6":         mapTo(HeadingType),
	"blockquote": mapTo(QuoteType),
	"ul":         mapTo(BulletedListType),
	"ol":         mapTo(NumberedListType),
	"li":         mapTo(ListItemType),

	"div":    unwrap,
	"span":   unwrap,
	"strong": unwrap,
	"b":      unwrap,
	"em":     unwrap,
	"i":      unwrap,
	"u":      unwrap,
	"s":      unwrap,
	"a":      unwrap,
	"code":   unwrap,
	"sup":    unwrap,
	"sub":    unwrap,
	"mark":   unwrap,
	"small":  unwrap,

	"br":       drop,
	"script":   drop,
	"style":    drop,
	"template": drop,
	"iframe":   drop,
	"noscript": drop,
	"object":   drop,
}
