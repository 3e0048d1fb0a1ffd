package plugin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// EmbedTag is the single custom tag every embed is written as.
const EmbedTag = "ndlaembed"

const (
	attrPrefix   = "data-"
	resourceKey  = "resource"
	embedTypeKey = "type"
)

// HTML parsers lower-case attribute names, so anything else would not
// survive a round trip.
var dataKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidDataKey reports whether key can be carried as a data-* attribute.
func ValidDataKey(key string) bool {
	return dataKeyPattern.MatchString(key)
}

// EncodeAttributes lays out data as data-* attributes in canonical order:
// resource, type (when the claim has one), the declared fields in schema
// order, then any undeclared keys sorted by name. Nil values are skipped.
//
// Every value must come back unchanged from DecodeAttributes: JSON fields
// are always JSON-encoded, string fields and undeclared keys only accept
// strings, and data.resource / data.type must agree with the claim.
func EncodeAttributes(claim EmbedClaim, data map[string]any) ([]Attribute, error) {
	if err := checkReserved(claim, data); err != nil {
		return nil, err
	}

	attrs := []Attribute{{Key: attrPrefix + resourceKey, Val: claim.Resource}}
	seen := map[string]bool{resourceKey: true, embedTypeKey: true}
	if claim.EmbedType != "" {
		attrs = append(attrs, Attribute{Key: attrPrefix + embedTypeKey, Val: claim.EmbedType})
	}

	for _, f := range claim.Fields {
		seen[f.Name] = true
		v, ok := data[f.Name]
		if !ok || v == nil {
			continue
		}
		s, err := encodeValue(f.Kind, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		attrs = append(attrs, Attribute{Key: attrPrefix + f.Name, Val: s})
	}

	extra := make([]string, 0, len(data))
	for k, v := range data {
		if seen[k] || v == nil {
			continue
		}
		if !ValidDataKey(k) {
			return nil, fmt.Errorf("data key %q cannot be written as an attribute", k)
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		s, err := encodeValue(FieldString, data[k])
		if err != nil {
			return nil, fmt.Errorf("undeclared field %q: %w", k, err)
		}
		attrs = append(attrs, Attribute{Key: attrPrefix + k, Val: s})
	}

	return attrs, nil
}

// checkReserved rejects data.resource and data.type values that would be
// overwritten by the claim or would route the embed to another plugin.
func checkReserved(claim EmbedClaim, data map[string]any) error {
	if v, ok := data[resourceKey]; ok && v != nil && v != claim.Resource {
		return fmt.Errorf("data.resource %v does not match embed resource %q", v, claim.Resource)
	}
	v, ok := data[embedTypeKey]
	if !ok || v == nil {
		return nil
	}
	if claim.EmbedType == "" {
		return fmt.Errorf("data.type %v set on embed %q, which has no type", v, claim.Resource)
	}
	if v != claim.EmbedType {
		return fmt.Errorf("data.type %v does not match embed type %q", v, claim.EmbedType)
	}
	return nil
}

func encodeValue(kind FieldKind, v any) (string, error) {
	if kind != FieldJSON {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("string field holds %T; declare it as json", v)
		}
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeAttributes is the inverse of EncodeAttributes. Fields declared as
// JSON are parsed; a value that is not valid JSON is kept as the raw string
// and logged. Attributes without the data- prefix are ignored.
func DecodeAttributes(claim EmbedClaim, attrs []Attribute, logger *slog.Logger) map[string]any {
	kinds := make(map[string]FieldKind, len(claim.Fields))
	for _, f := range claim.Fields {
		kinds[f.Name] = f.Kind
	}

	data := make(map[string]any, len(attrs))
	for _, a := range attrs {
		key, ok := strings.CutPrefix(a.Key, attrPrefix)
		if !ok || key == "" {
			continue
		}
		if kinds[key] != FieldJSON {
			data[key] = a.Val
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(a.Val), &v); err != nil {
			if logger != nil {
				logger.Warn("malformed JSON in embed attribute, keeping raw value",
					"resource", claim.Resource,
					"attribute", a.Key,
					"error", err,
				)
			}
			data[key] = a.Val
			continue
		}
		data[key] = v
	}
	return data
}

// RenderEmbed writes <ndlaembed attrs...>inner</ndlaembed>.
func RenderEmbed(attrs []Attribute, inner string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(EmbedTag)
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(EmbedTag)
	b.WriteString(">")
	return b.String()
}
