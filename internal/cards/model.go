package cards

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is the first classification axis of a card (Artist, Song, ...).
type Kind string

// Type is the second classification axis. A card carries one or more types.
type Type string

// Card is one immutable catalog entry.
type Card struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Types    TypeList `json:"type" yaml:"type"`
	Tags     []string `json:"tags" yaml:"tags"`
	ImageURL string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// HasType reports whether the card carries t.
func (c Card) HasType(t Type) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// TypeList accepts either a single value or a list when decoded.
type TypeList []Type

func (l *TypeList) UnmarshalJSON(b []byte) error {
	var one Type
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = TypeList{one}
		}
		return nil
	}
	var many []Type
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("type: want string or list of strings: %w", err)
	}
	*l = many
	return nil
}

func (l *TypeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*l = nil
			return nil
		}
		*l = TypeList{Type(value.Value)}
		return nil
	case yaml.SequenceNode:
		var many []Type
		if err := value.Decode(&many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	return errors.New("type: want scalar or sequence")
}
