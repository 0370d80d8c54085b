package inspector

import (
	"sort"
	"strings"
)

// Undetected is the description used when no manifest rule matched.
const Undetected = "Unable to detect dependencies. Please provide details manually."

// Rule maps a manifest file to the platform it signals. Exactly one of Name
// (exact base name) or Suffix is set.
type Rule struct {
	Name     string
	Suffix   string
	Platform string
	Manifest string
}

func (r Rule) Match(base string) bool {
	if r.Name != "" {
		return base == r.Name
	}
	return r.Suffix != "" && strings.HasSuffix(base, r.Suffix)
}

// DefaultRules is the fixed manifest table.
var DefaultRules = []Rule{
	{Name: "requirements.txt", Platform: "Python", Manifest: "requirements.txt"},
	{Name: "package.json", Platform: "Node.js", Manifest: "package.json"},
	{Name: "pom.xml", Platform: "Java (Maven)", Manifest: "pom.xml"},
	{Name: "build.gradle", Platform: "Java (Gradle)", Manifest: "build.gradle"},
	{Suffix: ".csproj", Platform: ".NET", Manifest: ".csproj"},
}

// Result is the deduplicated outcome of a scan. Both slices are sorted.
type Result struct {
	Platforms []string
	Manifests []string
}

func (r Result) Empty() bool { return len(r.Platforms) == 0 && len(r.Manifests) == 0 }

// Description renders the two human-readable lines, or Undetected.
func (r Result) Description() string {
	if r.Empty() {
		return Undetected
	}
	return "**Tech Stack:** " + strings.Join(r.Platforms, ", ") + "\n" +
		"**Dependencies:** " + strings.Join(r.Manifests, ", ")
}

func (r Result) String() string { return r.Description() }

// collector accumulates rule hits without duplicates.
type collector struct {
	rules     []Rule
	platforms map[string]struct{}
	manifests map[string]struct{}
}

func newCollector(rules []Rule) *collector {
	return &collector{
		rules:     rules,
		platforms: map[string]struct{}{},
		manifests: map[string]struct{}{},
	}
}

func (c *collector) observe(base string) {
	for _, r := range c.rules {
		if r.Match(base) {
			c.platforms[r.Platform] = struct{}{}
			c.manifests[r.Manifest] = struct{}{}
		}
	}
}

func (c *collector) result() Result {
	return Result{Platforms: sortedKeys(c.platforms), Manifests: sortedKeys(c.manifests)}
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
