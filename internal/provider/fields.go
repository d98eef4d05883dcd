package provider

import (
	"encoding/json"
	"strconv"
	"strings"

	"reelhub/internal/media"
)

// object is a decoded JSON object. Reads on a nil object return zero values,
// so lookups can be chained without checks.
type object map[string]any

func asObject(v any) object {
	if m, ok := v.(map[string]any); ok {
		return object(m)
	}
	return nil
}

// str returns the first key holding a non-empty scalar, rendered as text.
func (o object) str(keys ...string) string {
	for _, k := range keys {
		if s := scalar(o[k]); s != "" {
			return s
		}
	}
	return ""
}

func (o object) obj(key string) object {
	return asObject(o[key])
}

func (o object) list(key string) ([]any, bool) {
	l, ok := o[key].([]any)
	return l, ok
}

// first returns the first element of the list under key as an object.
func (o object) first(key string) object {
	l, _ := o.list(key)
	if len(l) == 0 {
		return nil
	}
	return asObject(l[0])
}

// scalar renders strings and non-zero numbers. Everything else, including
// zero, false, null, arrays and objects, is treated as missing.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return x.String()
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		if x == 0 {
			return ""
		}
		return strconv.Itoa(x)
	default:
		return ""
	}
}

// number reports the numeric value of a JSON number. Strings do not count.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// tags returns the first tag list found under keys. It is never nil.
func (o object) tags(keys ...string) []string {
	for _, k := range keys {
		v := o[k]
		if !truthy(v) {
			continue
		}
		switch x := v.(type) {
		case []any:
			return tagList(x)
		case string:
			return splitTags(x)
		}
	}
	return []string{}
}

func tagList(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		var tag string
		if o := asObject(v); o != nil {
			tag = o.str("name", "tagName", "title")
		} else {
			tag = scalar(v)
		}
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func splitTags(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// indexID is the fallback ID for list entries without one.
func indexID(o object, idx int, keys ...string) string {
	if id := o.str(keys...); id != "" {
		return id
	}
	return strconv.Itoa(idx)
}

// ordinal is the fallback display name for list entries without one.
func ordinal(o object, label string, idx int, keys ...string) string {
	if name := o.str(keys...); name != "" {
		return name
	}
	return label + " " + strconv.Itoa(idx+1)
}

func newItem(id, title, cover, description string) media.Item {
	return media.Item{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Cover:       cover,
		Description: plainText(description),
	}
}

func newDetail(item media.Item, tags []string) media.Detail {
	if tags == nil {
		tags = []string{}
	}
	return media.Detail{Item: item, Tags: tags}
}
