package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func (m Mapping) MarshalYAML() (any, error) {
	return m.Any(), nil
}

func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if raw == nil {
		*m = nil
		return nil
	}

	decoded, err := mappingFromAny(raw)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
