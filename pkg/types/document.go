// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"

	gojson "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// SectionBody holds the key/value pairs of one section in the order the keys
// were first seen. Keys are case-sensitive and values are never coerced.
type SectionBody struct {
	keys   []string
	values map[string]string
}

// Len returns the number of keys in the section.
func (b SectionBody) Len() int {
	return len(b.keys)
}

// Keys returns the section keys in document order.
func (b SectionBody) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Get returns the value stored under key.
func (b SectionBody) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Map returns an unordered copy of the section.
func (b SectionBody) Map() map[string]string {
	out := make(map[string]string, len(b.keys))
	for _, k := range b.keys {
		out[k] = b.values[k]
	}
	return out
}

func (b *SectionBody) set(key, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// MarshalJSON renders the section as a JSON object with keys in document order.
func (b SectionBody) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, b.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the section as a YAML mapping with keys in document order.
func (b SectionBody) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range b.keys {
		node.Content = append(node.Content, strNode(k), strNode(b.values[k]))
	}
	return node, nil
}

// ConfigDocument is a parsed configuration: section name to SectionBody, in
// the order sections were first seen. A ConfigDocument is only produced by a
// DocumentBuilder and has no exported mutators.
type ConfigDocument struct {
	names    []string
	sections map[string]*SectionBody
}

// Len returns the number of sections.
func (d *ConfigDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Sections returns the section names in document order.
func (d *ConfigDocument) Sections() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Section returns a copy of the named section.
func (d *ConfigDocument) Section(name string) (SectionBody, bool) {
	if d == nil {
		return SectionBody{}, false
	}
	s, ok := d.sections[name]
	if !ok {
		return SectionBody{}, false
	}
	return SectionBody{keys: s.Keys(), values: s.Map()}, true
}

// Get returns the value of key in section.
func (d *ConfigDocument) Get(section, key string) (string, bool) {
	if d == nil {
		return "", false
	}
	s, ok := d.sections[section]
	if !ok {
		return "", false
	}
	return s.Get(key)
}

// Map returns an unordered deep copy of the document.
func (d *ConfigDocument) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, d.Len())
	if d == nil {
		return out
	}
	for _, name := range d.names {
		out[name] = d.sections[name].Map()
	}
	return out
}

// MarshalJSON renders the document as a JSON object of objects, preserving
// section and key order.
func (d *ConfigDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if d != nil {
		for i, name := range d.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			body, err := d.sections[name].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(body)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the document as a YAML mapping of mappings, preserving
// section and key order.
func (d *ConfigDocument) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if d == nil {
		return node, nil
	}
	for _, name := range d.names {
		body, _ := d.sections[name].MarshalYAML()
		node.Content = append(node.Content, strNode(name), body.(*yaml.Node))
	}
	return node, nil
}

// DocumentBuilder accumulates sections and keys for a single ConfigDocument.
// Redefined sections are merged and redefined keys take the last value.
type DocumentBuilder struct {
	doc *ConfigDocument
}

// NewDocumentBuilder returns an empty builder.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{doc: emptyDocument()}
}

// HasSection reports whether name has already been added.
func (b *DocumentBuilder) HasSection(name string) bool {
	_, ok := b.doc.sections[name]
	return ok
}

// AddSection registers a section so that it appears in the output even when
// it has no keys. Adding an existing section is a no-op.
func (b *DocumentBuilder) AddSection(name string) {
	if _, ok := b.doc.sections[name]; ok {
		return
	}
	b.doc.names = append(b.doc.names, name)
	b.doc.sections[name] = &SectionBody{values: make(map[string]string)}
}

// Set stores value under key in section, creating the section if needed.
func (b *DocumentBuilder) Set(section, key, value string) {
	b.AddSection(section)
	b.doc.sections[section].set(key, value)
}

// Build returns the accumulated document and resets the builder, so the
// returned document is never modified afterwards.
func (b *DocumentBuilder) Build() *ConfigDocument {
	doc := b.doc
	b.doc = emptyDocument()
	return doc
}

// ExportEnvelope is the serialized form of a ConfigDocument: the document
// plus the moment it was exported.
type ExportEnvelope struct {
	// Timestamp is the RFC 3339 UTC time of serialization.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Config is the exported document.
	Config *ConfigDocument `json:"config" yaml:"config"`
}

func emptyDocument() *ConfigDocument {
	return &ConfigDocument{sections: make(map[string]*SectionBody)}
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := gojson.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
