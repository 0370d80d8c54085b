package inspector

import (
	"dockergen/internal/scan"
)

// Detect walks root and classifies it with rules (DefaultRules when nil).
func Detect(root string, rules []Rule) (Result, error) {
	if rules == nil {
		rules = DefaultRules
	}
	c := newCollector(rules)
	err := scan.Files(root, func(f scan.FileVisit) error {
		c.observe(f.Name)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return c.result(), nil
}
