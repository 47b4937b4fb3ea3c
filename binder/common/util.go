package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYaml loads a Yaml file into out. The loaded object is dumped to the
// debug log under label.
func LoadYaml(filename string, out interface{}, label string, log *Logger) error {
	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("yaml read %s: %w", filename, err)
	}
	if err = yaml.Unmarshal(yamlData, out); err != nil {
		return fmt.Errorf("yaml unmarshal %s: %w", filename, err)
	}
	log.Dbg("%s", YamlObjectAsString(out, label))
	return nil
}

// YamlObjectAsString outputs contents of yaml object with a label
func YamlObjectAsString(in interface{}, label string) string {
	d, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Sprintf("=== %s ===\nerror: yaml.Marshal %v\n\n", label, err)
	}
	return fmt.Sprintf("=== %s ===\n%s\n\n", label, string(d))
}
