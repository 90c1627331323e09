package chips

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

var testDenoms = []Denomination{1, 5, 25, 100, 500, 1000}

func TestSelectMultiplierWithBlind(t *testing.T) {
	t.Parallel()

	// 6 players, 100 each, 2 big blind: 0.02 and 0.1 both score 100, the
	// ascending scan with strict improvement keeps the smaller one.
	m, info := SelectMultiplier(600, 6, fptr(2), TargetBBStack, testDenoms)
	if m != 0.02 {
		t.Fatalf("expected multiplier 0.02, got %v", m)
	}
	if info.BBInChips == nil || *info.BBInChips != 100 {
		t.Errorf("expected bb of 100 chips, got %v", info.BBInChips)
	}
	if info.BBPerPlayer == nil || *info.BBPerPlayer != 50 {
		t.Errorf("expected 50 BB per player, got %v", info.BBPerPlayer)
	}
	if info.SBInChips == nil || *info.SBInChips != 50 {
		t.Errorf("expected sb of 50 chips, got %v", info.SBInChips)
	}
}

func TestSelectMultiplierRejectsCoarseChips(t *testing.T) {
	t.Parallel()

	// With a 2 unit big blind, any multiplier that makes the smallest
	// chip worth more than bb/4 must not be selected.
	m, _ := SelectMultiplier(600, 6, fptr(2), TargetBBStack, testDenoms)
	if float64(testDenoms[0])*m > 2.0/4 {
		t.Errorf("selected multiplier %v makes smallest chip too coarse", m)
	}
}

func TestSelectMultiplierFallbackWithoutBlind(t *testing.T) {
	t.Parallel()

	// Average buy-in 100: target multiplier = 100 * 1% / 1 = 1.
	m, info := SelectMultiplier(600, 6, nil, TargetBBStack, testDenoms)
	if m != 1 {
		t.Fatalf("expected fallback multiplier 1, got %v", m)
	}
	if info.BBInChips != nil || info.SBInChips != nil || info.BBPerPlayer != nil {
		t.Error("blind-derived info must be nil on the blind-less path")
	}
	if info.ChipsPerPlayer != 100 {
		t.Errorf("expected 100 chips per player, got %v", info.ChipsPerPlayer)
	}
}

func TestSelectMultiplierFallsBackWhenNoRoundBB(t *testing.T) {
	t.Parallel()

	// A 3 unit big blind never lands on a preferred round chip count for
	// any candidate, so selection drops to the blind-less path.
	m, info := SelectMultiplier(600, 6, fptr(3), TargetBBStack, testDenoms)
	if m != 1 {
		t.Fatalf("expected fallback multiplier 1, got %v", m)
	}
	if info.BBInChips != nil {
		t.Error("fallback path must not report blind info")
	}
}

func TestSelectMultiplierAlwaysReturns(t *testing.T) {
	t.Parallel()

	totals := []float64{1, 10, 100, 1000, 100000}
	blinds := []*float64{nil, fptr(0.05), fptr(1), fptr(7), fptr(500)}
	for _, total := range totals {
		for _, bb := range blinds {
			m, _ := SelectMultiplier(total, 4, bb, TargetBBStack, testDenoms)
			if m <= 0 || math.IsNaN(m) {
				t.Errorf("total=%v bb=%v: got invalid multiplier %v", total, bb, m)
			}
		}
	}
}

func TestNearPreferredBB(t *testing.T) {
	t.Parallel()

	if !nearPreferredBB(100) {
		t.Error("exact preferred value must match")
	}
	if !nearPreferredBB(25.005) {
		t.Error("value within tolerance must match")
	}
	if nearPreferredBB(40) {
		t.Error("40 is not a preferred bb size")
	}
}
