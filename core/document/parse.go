package document

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing is returned when no document exists for a tag.
	ErrMissing = errors.New("document missing")
	// ErrMalformed is returned when a document is empty or not a mapping or sequence.
	ErrMalformed = errors.New("document malformed")
)

// Document is the parsed content of one entity type's document.
type Document struct {
	// Tag is the entity type.
	Tag string
	// Source names where the document was read from.
	Source string
	// Records are the declared instances in document order.
	Records []*Record
	// Skipped describes entries that could not be turned into records.
	Skipped []string
}

// Parse decodes data into the records of tag. uniqueKey is the attribute identifying an
// instance of tag.
func Parse(tag, uniqueKey string, data []byte) (*Document, error) {
	doc := &Document{Tag: tag}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, tag)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, tag, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, tag)
	}

	body := root.Content[0]
	switch body.Kind {
	case yaml.MappingNode:
		if len(body.Content) == 0 {
			return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, tag)
		}
		for i := 0; i+1 < len(body.Content); i += 2 {
			key, value := body.Content[i], body.Content[i+1]
			rec, err := fromMappingEntry(tag, uniqueKey, key, value)
			if err != nil {
				doc.Skipped = append(doc.Skipped, err.Error())
				continue
			}
			doc.Records = append(doc.Records, rec)
		}
	case yaml.SequenceNode:
		if len(body.Content) == 0 {
			return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, tag)
		}
		for i, item := range body.Content {
			rec, err := fromSequenceItem(tag, uniqueKey, item)
			if err != nil {
				doc.Skipped = append(doc.Skipped, fmt.Sprintf("entry %d: %v", i+1, err))
				continue
			}
			doc.Records = append(doc.Records, rec)
		}
	case yaml.ScalarNode:
		if body.Tag == "!!null" {
			return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, tag)
		}
		return nil, fmt.Errorf("%w: %s: expected a mapping or a sequence, got a scalar", ErrMalformed, tag)
	default:
		return nil, fmt.Errorf("%w: %s: expected a mapping or a sequence", ErrMalformed, tag)
	}

	return doc, nil
}

func fromMappingEntry(tag, uniqueKey string, key, value *yaml.Node) (*Record, error) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return nil, fmt.Errorf("line %d: entry key must be a non-empty scalar", key.Line)
	}

	attrs := NewAttributes()
	switch {
	case value.Kind == yaml.MappingNode:
		if err := decodeMapping(value, attrs); err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}
	case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
		// "name:" with no attributes declares a bare instance
	default:
		return nil, fmt.Errorf("%s: attributes must be a mapping", key.Value)
	}

	if _, ok := attrs.Get(uniqueKey); !ok {
		attrs.Set(uniqueKey, key.Value)
	}
	return newRecord(tag, uniqueKey, attrs), nil
}

func fromSequenceItem(tag, uniqueKey string, item *yaml.Node) (*Record, error) {
	if item.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: entry must be a mapping", item.Line)
	}

	attrs := NewAttributes()
	if err := decodeMapping(item, attrs); err != nil {
		return nil, err
	}
	if v, ok := attrs.Get(uniqueKey); !ok || v == nil || fmt.Sprint(v) == "" {
		return nil, fmt.Errorf("line %d: entry has no %q", item.Line, uniqueKey)
	}
	return newRecord(tag, uniqueKey, attrs), nil
}

func decodeMapping(node *yaml.Node, attrs *Attributes) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: attribute key must be a scalar", k.Line)
		}
		var value any
		if err := v.Decode(&value); err != nil {
			return fmt.Errorf("line %d: %s: %w", v.Line, k.Value, err)
		}
		attrs.Set(k.Value, value)
	}
	return nil
}

func newRecord(tag, uniqueKey string, attrs *Attributes) *Record {
	name, _ := attrs.Get(uniqueKey)
	return &Record{
		Tag:        tag,
		Name:       fmt.Sprint(name),
		Attributes: attrs,
		Meta:       map[string]any{},
	}
}
