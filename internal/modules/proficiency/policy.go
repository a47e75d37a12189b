package proficiency

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/practice-backend/internal/domain"
)

const PolicyPathEnv = "PROFICIENCY_POLICY_YAML"

//go:embed policy.yaml
var defaultPolicyYAML []byte

type LevelThreshold struct {
	Level types.ProficiencyLevel `yaml:"level"`
	Min   float64                `yaml:"min"`
}

// Policy holds the tunable scoring constants.
type Policy struct {
	Version        int              `yaml:"version"`
	PassPercentage float64          `yaml:"pass_percentage"`
	PriorWeight    float64          `yaml:"prior_weight"`
	RecentWeight   float64          `yaml:"recent_weight"`
	Levels         []LevelThreshold `yaml:"levels"`
}

// DefaultPolicy returns the embedded policy. It panics only if the embedded
// document itself is broken.
func DefaultPolicy() Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded proficiency policy: %v", err))
	}
	return p
}

// LoadPolicy reads path when set, otherwise the embedded default.
func LoadPolicy(path string) (Policy, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPolicy(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	p, err := ParsePolicy(raw)
	if err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

func ParsePolicy(raw []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse: %w", err)
	}
	sort.SliceStable(p.Levels, func(i, j int) bool { return p.Levels[i].Min < p.Levels[j].Min })
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	if p.PassPercentage < 0 || p.PassPercentage > 100 {
		return fmt.Errorf("pass_percentage %v outside [0,100]", p.PassPercentage)
	}
	if p.PriorWeight < 0 || p.RecentWeight < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if math.Abs(p.PriorWeight+p.RecentWeight-1) > 1e-9 {
		return fmt.Errorf("prior_weight + recent_weight must equal 1, got %v", p.PriorWeight+p.RecentWeight)
	}
	if len(p.Levels) == 0 {
		return fmt.Errorf("at least one level required")
	}
	if p.Levels[0].Min != 0 {
		return fmt.Errorf("lowest level min must be 0, got %v", p.Levels[0].Min)
	}
	seen := map[types.ProficiencyLevel]bool{}
	for i, l := range p.Levels {
		if strings.TrimSpace(string(l.Level)) == "" {
			return fmt.Errorf("level %d has no name", i)
		}
		if seen[l.Level] {
			return fmt.Errorf("level %s listed twice", l.Level)
		}
		seen[l.Level] = true
		if i > 0 && l.Min == p.Levels[i-1].Min {
			return fmt.Errorf("levels %s and %s share min %v", p.Levels[i-1].Level, l.Level, l.Min)
		}
	}
	return nil
}

// LevelFor maps a 0..100 score to its level. Levels must be sorted ascending by Min.
func (p Policy) LevelFor(score float64) types.ProficiencyLevel {
	level := p.Levels[0].Level
	for _, l := range p.Levels {
		if score >= l.Min {
			level = l.Level
		}
	}
	return level
}

// Smooth blends a prior score with the latest one; with no prior the latest wins.
func (p Policy) Smooth(prior *float64, latest float64) float64 {
	if prior == nil {
		return latest
	}
	return *prior*p.PriorWeight + latest*p.RecentWeight
}

func (p Policy) Passed(percentage float64) bool {
	return percentage >= p.PassPercentage
}
