package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PolymorphicProperties carries a properties object whose concrete class is named by
// the "class" member of its JSON form. Unknown classes decode with a nil Value so the
// caller can report them as the wrong class.
type PolymorphicProperties struct {
	Class string
	Value Properties
}

// Wrap returns p ready to be sent in a request body.
func Wrap(p Properties) *PolymorphicProperties {
	if p == nil {
		return nil
	}
	return &PolymorphicProperties{Class: p.PropertiesClass(), Value: p}
}

// Unwrap returns the decoded value, tolerating a nil receiver.
func (p *PolymorphicProperties) Unwrap() Properties {
	if p == nil {
		return nil
	}
	return p.Value
}

// ClassName returns the class named in the request, tolerating a nil receiver.
func (p *PolymorphicProperties) ClassName() string {
	if p == nil {
		return ""
	}
	return p.Class
}

func (p *PolymorphicProperties) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var discriminator struct {
		Class string `json:"class"`
	}
	if err := json.Unmarshal(data, &discriminator); err != nil {
		return fmt.Errorf("failed to read properties class: %w", err)
	}

	p.Class = discriminator.Class
	value, err := NewProperties(discriminator.Class)
	if err != nil {
		p.Value = nil
		return nil
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to decode %s: %w", discriminator.Class, err)
	}
	p.Value = value
	return nil
}

func (p PolymorphicProperties) MarshalJSON() ([]byte, error) {
	if p.Value == nil {
		return json.Marshal(map[string]string{"class": p.Class})
	}

	body, err := json.Marshal(p.Value)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	class, _ := json.Marshal(p.Value.PropertiesClass())
	fields["class"] = class
	return json.Marshal(fields)
}
