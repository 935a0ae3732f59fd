package grouping

import (
	"sync"

	"motinsight/domain/core"
)

// Classifier maps free-text defect descriptions onto component groups via an
// ordered first-match-wins pattern list. It memoizes results per instance:
// description cardinality is bounded and classification is deterministic, so
// an exact-string cache is sufficient. The cache is guarded so one classifier
// can be shared across parallel report generation.
type Classifier struct {
	rules []rule

	mu   sync.RWMutex
	memo map[string]core.GroupID
}

// NewClassifier creates a classifier over the default defect taxonomy.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: defaultRules,
		memo:  make(map[string]core.GroupID),
	}
}

// Classify returns the component group for a defect description, or
// (ungrouped, false) when no pattern matches. Matching is case-insensitive
// and never fails; an unmatched description is a normal outcome meaning the
// defect is assessed individually.
func (c *Classifier) Classify(description string) (core.GroupID, bool) {
	c.mu.RLock()
	g, cached := c.memo[description]
	c.mu.RUnlock()
	if cached {
		return g, !g.IsZero()
	}

	g = c.match(description)

	c.mu.Lock()
	c.memo[description] = g
	c.mu.Unlock()

	return g, !g.IsZero()
}

func (c *Classifier) match(description string) core.GroupID {
	for _, r := range c.rules {
		if r.pattern.MatchString(description) {
			return r.group
		}
	}
	return ""
}

// Groups returns the distinct group IDs in pattern-table order.
func (c *Classifier) Groups() []core.GroupID {
	seen := make(map[core.GroupID]bool, len(c.rules))
	out := make([]core.GroupID, 0, len(c.rules))
	for _, r := range c.rules {
		if !seen[r.group] {
			seen[r.group] = true
			out = append(out, r.group)
		}
	}
	return out
}
