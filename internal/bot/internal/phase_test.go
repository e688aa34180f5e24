package internal

import "testing"

func TestDetectPhase_Early(t *testing.T) {
	counts := map[string]int{"p1": 27, "p2": 26, "p3": 27, "p4": 25}
	if got := DetectPhase(1, counts); got != PhaseEarly {
		t.Fatalf("DetectPhase = %v, want %v", got, PhaseEarly)
	}
}

func TestDetectPhase_Mid(t *testing.T) {
	counts := map[string]int{"p1": 14, "p2": 12, "p3": 18, "p4": 9}
	if got := DetectPhase(6, counts); got != PhaseMid {
		t.Fatalf("DetectPhase = %v, want %v", got, PhaseMid)
	}
	if got := DetectPhase(2, counts); got != PhaseMid {
		t.Fatalf("small hands in round 2 should be mid, got %v", got)
	}
}

func TestDetectPhase_Late(t *testing.T) {
	counts := map[string]int{"p1": 5, "p2": 20}
	if got := DetectPhase(4, counts); got != PhaseLate {
		t.Fatalf("DetectPhase = %v, want %v", got, PhaseLate)
	}
	if got := DetectPhase(lateRoundLimit, map[string]int{"p1": 20}); got != PhaseLate {
		t.Fatalf("long game should be late, got %v", got)
	}
}

func TestDetectPhase_NoSeats(t *testing.T) {
	if got := DetectPhase(1, nil); got != PhaseMid {
		t.Fatalf("DetectPhase = %v, want %v", got, PhaseMid)
	}
}
