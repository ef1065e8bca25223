package model

import "testing"

func TestCrime_Risk(t *testing.T) {
	tests := []struct {
		difficulty int32
		want       RiskLevel
	}{
		{1, RiskLow},
		{3, RiskLow},
		{4, RiskMedium},
		{6, RiskMedium},
		{7, RiskHigh},
		{10, RiskHigh},
	}

	for _, tt := range tests {
		c := Crime{Difficulty: tt.difficulty}
		if got := c.Risk(); got != tt.want {
			t.Errorf("Risk(difficulty=%d) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}
