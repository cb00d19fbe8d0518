package cart

import "testing"

func TestCutLabelsRoundTrip(t *testing.T) {
	left := cutLeftLabel(3.14159)
	right := cutRightLabel(3.14159)

	v, err := parseThreshold(left)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.14159 {
		t.Error("expected threshold to round-trip, got:", v)
	}

	v, err = parseThreshold(right)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.14159 {
		t.Error("expected threshold to round-trip, got:", v)
	}
}

func TestParseThresholdRejectsGarbage(t *testing.T) {
	if _, err := parseThreshold(""); err != ErrCorruptTree {
		t.Error("expected ErrCorruptTree for an empty label, got:", err)
	}
	if _, err := parseThreshold("<"); err != ErrCorruptTree {
		t.Error("expected ErrCorruptTree for a label with no number, got:", err)
	}
}

func TestCategoricalLabelContainsLevel(t *testing.T) {
	label := categoricalLabel([]int{0, 2, 4})
	for _, l := range []int{0, 2, 4} {
		if !containsLevel(label, l) {
			t.Error("expected label to contain level", l)
		}
	}
	for _, l := range []int{1, 3} {
		if containsLevel(label, l) {
			t.Error("expected label not to contain level", l)
		}
	}
}
