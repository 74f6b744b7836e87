package domain

import "fmt"

// UnratedTier is reported for users with no persisted classification.
const UnratedTier = "Unrated"

// TierLevel maps an accuracy floor to a tier label.
type TierLevel struct {
	Label       string
	MinAccuracy float64
}

// TierPolicy buckets an accuracy ratio into a discrete tier label. Levels are
// ordered from the highest accuracy floor down; classification picks the first
// level whose floor the ratio meets, so higher accuracy never yields a lower
// tier.
type TierPolicy struct {
	Levels []TierLevel
}

// DefaultTierPolicy matches the original deployment: high-accuracy users are
// rated ready for harder questions.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{Levels: []TierLevel{
		{Label: "Hard", MinAccuracy: 0.8},
		{Label: "Medium", MinAccuracy: 0.5},
		{Label: "Easy", MinAccuracy: 0},
	}}
}

// Validate checks that the policy has at least one level, floors descend
// strictly, and the last level catches everything.
func (p TierPolicy) Validate() error {
	if len(p.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidTierPolicy)
	}
	for i, level := range p.Levels {
		if level.Label == "" {
			return fmt.Errorf("%w: level %d has no label", ErrInvalidTierPolicy, i)
		}
		if level.MinAccuracy < 0 || level.MinAccuracy > 1 {
			return fmt.Errorf("%w: level %q floor %v out of range", ErrInvalidTierPolicy, level.Label, level.MinAccuracy)
		}
		if i > 0 && level.MinAccuracy >= p.Levels[i-1].MinAccuracy {
			return fmt.Errorf("%w: floors must descend, %q >= %q", ErrInvalidTierPolicy, level.Label, p.Levels[i-1].Label)
		}
	}
	if p.Levels[len(p.Levels)-1].MinAccuracy != 0 {
		return fmt.Errorf("%w: last level must have floor 0", ErrInvalidTierPolicy)
	}
	return nil
}

// Classify maps an accuracy ratio to a tier label.
func (p TierPolicy) Classify(accuracy float64) string {
	for _, level := range p.Levels {
		if accuracy >= level.MinAccuracy {
			return level.Label
		}
	}
	// Unreachable for a validated policy; the zero-floor level catches all.
	return p.Levels[len(p.Levels)-1].Label
}
