package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RewardTier represents a customer's loyalty tier, derived from the
// point balance at calculation time. It is never stored.
type RewardTier int

const (
	TierNone   RewardTier = 0
	TierBronze RewardTier = 1
	TierSilver RewardTier = 2
	TierGold   RewardTier = 3
)

// Tier thresholds in points. A balance at or above a threshold
// qualifies for the tier.
const (
	SilverThreshold = 500
	GoldThreshold   = 1000
)

// TierForPoints maps a point balance to a tier. Walk-in customers have
// no balance and get TierNone via the zero value.
func TierForPoints(points int) RewardTier {
	switch {
	case points >= GoldThreshold:
		return TierGold
	case points >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// DiscountRate returns the fraction of the subtotal discounted for
// this tier.
func (t RewardTier) DiscountRate() float64 {
	switch t {
	case TierGold:
		return 0.15
	case TierSilver:
		return 0.10
	case TierBronze:
		return 0.05
	default:
		return 0
	}
}

// PointsEarned returns the loyalty points accrued for a purchase:
// 10 points for every whole 100 currency units of the final (already
// discounted) amount. The amount is given in cents.
func PointsEarned(finalCents int64) int {
	return int(finalCents/10000) * 10
}

func (t RewardTier) String() string {
	return [...]string{"None", "Bronze", "Silver", "Gold"}[t]
}

func (t RewardTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RewardTier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = RewardTier(i)
		return nil
	}
	switch str {
	case "Bronze":
		*t = TierBronze
	case "Silver":
		*t = TierSilver
	case "Gold":
		*t = TierGold
	default:
		*t = TierNone
	}
	return nil
}

func (t RewardTier) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *RewardTier) Scan(value interface{}) error {
	if value == nil {
		*t = TierNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = RewardTier(v)
	case int:
		*t = RewardTier(v)
	}
	return nil
}
