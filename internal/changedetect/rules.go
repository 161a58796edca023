package changedetect

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRuleNotFound is returned when no rule exists for a token.
	ErrRuleNotFound = errors.New("alert rule not found")

	// ErrInvalidRule is returned when a rule has no token or a negative threshold.
	ErrInvalidRule = errors.New("invalid alert rule")
)

// AlertRule overrides the balance change thresholds for one token.
type AlertRule struct {
	Token             string          `json:"token"`
	AbsoluteThreshold decimal.Decimal `json:"absoluteThreshold"`
	PercentThreshold  decimal.Decimal `json:"percentThreshold"`
	Enabled           bool            `json:"enabled"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// RuleSet is a concurrency-safe collection of alert rules keyed by token symbol.
// Symbols are matched case-insensitively.
type RuleSet struct {
	mu    sync.RWMutex
	rules map[string]AlertRule
	now   func() time.Time
}

// NewRuleSet creates an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules: make(map[string]AlertRule),
		now:   time.Now,
	}
}

func normalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// Add stores rule, replacing any existing rule for the same token. New rules
// are enabled; a replaced rule keeps its creation time.
func (r *RuleSet) Add(rule AlertRule) (AlertRule, error) {
	rule.Token = normalizeToken(rule.Token)
	if rule.Token == "" {
		return AlertRule{}, fmt.Errorf("%w: token is required", ErrInvalidRule)
	}
	if rule.AbsoluteThreshold.IsNegative() || rule.PercentThreshold.IsNegative() {
		return AlertRule{}, fmt.Errorf("%w: thresholds for %s must not be negative", ErrInvalidRule, rule.Token)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rule.Enabled = true
	rule.CreatedAt = r.now()
	if existing, ok := r.rules[rule.Token]; ok {
		rule.CreatedAt = existing.CreatedAt
	}

	r.rules[rule.Token] = rule
	return rule, nil
}

// Remove deletes the rule for token.
func (r *RuleSet) Remove(token string) error {
	token = normalizeToken(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[token]; !ok {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, token)
	}

	delete(r.rules, token)
	return nil
}

// Toggle flips the enabled flag of the rule for token and returns the result.
func (r *RuleSet) Toggle(token string) (AlertRule, error) {
	token = normalizeToken(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[token]
	if !ok {
		return AlertRule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, token)
	}

	rule.Enabled = !rule.Enabled
	r.rules[token] = rule
	return rule, nil
}

// List returns every rule ordered by token.
func (r *RuleSet) List() []AlertRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]AlertRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}

	slices.SortFunc(out, func(a, b AlertRule) int {
		return strings.Compare(a.Token, b.Token)
	})
	return out
}

// enabled returns the rule for token if it exists and is enabled.
func (r *RuleSet) enabled(token string) (AlertRule, bool) {
	if r == nil {
		return AlertRule{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[normalizeToken(token)]
	return rule, ok && rule.Enabled
}
