package cart

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	if c.MinSize != 10 || c.MinCut != 5 || c.MinDev != 0.01 {
		t.Error("unexpected defaults:", c)
	}
	if c.Criterion != DevianceCriterion {
		t.Error("expected deviance to be the default criterion")
	}
	if c.NMax != 200 {
		t.Error("expected default NMax of 200, got:", c.NMax)
	}
}

func TestConfigOptionsOverrideDefaults(t *testing.T) {
	c := NewConfig(MinSize(20), MinCut(2), MinDev(0.05), UseCriterion(GiniCriterion), NMax(50))
	if c.MinSize != 20 || c.MinCut != 2 || c.MinDev != 0.05 {
		t.Error("options did not apply:", c)
	}
	if c.Criterion != GiniCriterion {
		t.Error("expected Gini criterion after UseCriterion option")
	}
	if c.NMax != 50 {
		t.Error("expected NMax override, got:", c.NMax)
	}
}
