package buildingcode

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

var (
	defaultRules     []Rule
	defaultRulesOnce sync.Once
)

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the embedded default rule set. The embedded file is
// part of the build, so a decode failure is a programming error and yields an
// empty set rather than a panic.
func DefaultRules() []Rule {
	defaultRulesOnce.Do(func() {
		var rf ruleFile
		if err := yaml.Unmarshal(defaultRulesYAML, &rf); err == nil {
			defaultRules = rf.Rules
		}
	})
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
