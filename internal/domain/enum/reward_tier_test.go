package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   RewardTier
	}{
		{"zero points", 0, TierBronze},
		{"just below silver", 499, TierBronze},
		{"silver boundary", 500, TierSilver},
		{"just below gold", 999, TierSilver},
		{"gold boundary", 1000, TierGold},
		{"well above gold", 5000, TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForPoints(tt.points))
		})
	}
}

func TestDiscountRate(t *testing.T) {
	assert.Equal(t, 0.0, TierNone.DiscountRate())
	assert.Equal(t, 0.05, TierBronze.DiscountRate())
	assert.Equal(t, 0.10, TierSilver.DiscountRate())
	assert.Equal(t, 0.15, TierGold.DiscountRate())
}

func TestDiscountRateMonotonic(t *testing.T) {
	// A higher tier never gets a smaller discount.
	tiers := []RewardTier{TierNone, TierBronze, TierSilver, TierGold}
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].DiscountRate(), tiers[i-1].DiscountRate())
	}
}

func TestPointsEarned(t *testing.T) {
	tests := []struct {
		name       string
		finalCents int64
		want       int
	}{
		{"below first hundred", 9900, 0},
		{"exactly one hundred", 10000, 10},
		{"partial hundred floors", 12600, 10},
		{"two hundred", 20000, 20},
		{"zero amount", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsEarned(tt.finalCents))
		})
	}
}

func TestRewardTierString(t *testing.T) {
	assert.Equal(t, "None", TierNone.String())
	assert.Equal(t, "Bronze", TierBronze.String())
	assert.Equal(t, "Silver", TierSilver.String())
	assert.Equal(t, "Gold", TierGold.String())
}

func TestRewardTierJSONRoundTrip(t *testing.T) {
	data, err := TierSilver.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"Silver"`, string(data))

	var tier RewardTier
	assert.NoError(t, tier.UnmarshalJSON(data))
	assert.Equal(t, TierSilver, tier)
}
