package grouping

import (
	"testing"

	"motinsight/domain/core"
)

// canonicalExamples pins one real DVSA-style wording per group. The table is
// a first-match-wins decision list, so this doubles as the regression guard:
// if a rule is reordered or broadened, the wording it starts absorbing shows
// up here as a changed classification.
var canonicalExamples = []struct {
	description string
	want        core.GroupID
}{
	{"Parking brake efficiency below requirements", ParkingBrake},
	{"Nearside Front Brake disc excessively pitted", BrakeDiscDrum},
	{"Offside Front Brake pad(s) less than 1.5 mm thick", BrakePads},
	{"Nearside Rear Brake pipe excessively corroded", BrakeLines},
	{"Brake fluid level below minimum mark", BrakeFluid},
	{"Service brake efficiency below requirements", BrakePerformance},
	{"Offside Front Coil spring fractured", SuspensionSpring},
	{"Nearside Front Shock absorber has a serious fluid leak", ShockAbsorber},
	{"Nearside Front Lower Suspension arm ball joint excessively worn", SuspensionArm},
	{"Offside Front Wheel bearing has excessive play", WheelBearing},
	{"Nearside Track rod end excessively worn", SteeringLinkage},
	{"Power steering fluid level below minimum", PowerSteering},
	{"Nearside Front Tyre tread depth below requirements of 1.6mm", TyreWear},
	{"Offside Rear Tyre has a cut in excess of the requirements", TyreDamage},
	{"Offside Headlamp aim too high", HeadlampAim},
	{"Nearside Front Position lamp not working", LightingBulbs},
	{"Exhaust emissions carbon monoxide content excessive", Emissions},
	{"Exhaust has a major leak of gases", ExhaustSystem},
	{"Windscreen damaged but not adversely affecting driver's view", WindscreenView},
	{"Front wiper blade deteriorated", WipersWashers},
	{"Nearside sill excessively corroded within a prescribed area", StructureCorrosion},
	{"Driver's Seat belt webbing frayed", SeatBelts},
	{"Nearside Front constant velocity joint gaiter split", DriveshaftCV},
	{"Fuel leak from fuel pipe union", FuelSystem},
}

func TestClassifier_CanonicalExamples(t *testing.T) {
	c := NewClassifier()
	for _, tc := range canonicalExamples {
		got, ok := c.Classify(tc.description)
		if !ok {
			t.Errorf("Classify(%q) found no group, want %s", tc.description, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.description, got, tc.want)
		}
	}
}

// TestClassifier_SpecificBeforeGeneral verifies first-match-wins ordering on
// strings that match both a specific and a more general pattern.
func TestClassifier_SpecificBeforeGeneral(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		description string
		want        core.GroupID
		absorber    core.GroupID // the general group that would wrongly win if reordered
	}{
		// "brake efficiency" also matches the brake_performance pattern
		{"Parking brake efficiency below requirements", ParkingBrake, BrakePerformance},
		// "lamp" also matches the generic lighting pattern
		{"Offside Headlamp aim too high", HeadlampAim, LightingBulbs},
		// "exhaust" also matches the exhaust system pattern
		{"Exhaust emissions lambda reading outside limits", Emissions, ExhaustSystem},
	}

	for _, tc := range cases {
		got, ok := c.Classify(tc.description)
		if !ok || got != tc.want {
			t.Errorf("Classify(%q) = %s (ok=%v), want %s", tc.description, got, ok, tc.want)
		}
		if got == tc.absorber {
			t.Errorf("Classify(%q) absorbed into general group %s", tc.description, tc.absorber)
		}
	}
}

func TestClassifier_NoMatchIsNormal(t *testing.T) {
	c := NewClassifier()
	for _, desc := range []string{
		"Horn control insecure",
		"Registration plate deteriorated",
		"",
	} {
		if g, ok := c.Classify(desc); ok {
			t.Errorf("Classify(%q) = %s, want no group", desc, g)
		}
	}
}

func TestClassifier_MemoizationIsDeterministic(t *testing.T) {
	c := NewClassifier()
	const desc = "Nearside Front Brake disc excessively worn"

	first, okFirst := c.Classify(desc)
	for i := 0; i < 100; i++ {
		got, ok := c.Classify(desc)
		if got != first || ok != okFirst {
			t.Fatalf("classification changed between calls: %s/%v then %s/%v", first, okFirst, got, ok)
		}
	}

	// Negative results are cached too
	if _, ok := c.Classify("Horn control insecure"); ok {
		t.Fatal("unexpected group for unmatched description")
	}
	if _, ok := c.Classify("Horn control insecure"); ok {
		t.Fatal("cached negative result changed")
	}
}

func TestClassifier_GroupsInTableOrder(t *testing.T) {
	c := NewClassifier()
	groups := c.Groups()
	if len(groups) != 24 {
		t.Fatalf("expected 24 groups, got %d", len(groups))
	}
	if groups[0] != ParkingBrake {
		t.Errorf("first group = %s, want %s", groups[0], ParkingBrake)
	}
	seen := make(map[core.GroupID]bool)
	for _, g := range groups {
		if seen[g] {
			t.Errorf("duplicate group %s", g)
		}
		seen[g] = true
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(BrakeDiscDrum); got != "Brake discs and drums" {
		t.Errorf("DisplayName(BrakeDiscDrum) = %q", got)
	}
	if got := DisplayName(core.GroupID("mystery")); got != "mystery" {
		t.Errorf("DisplayName falls back to raw ID, got %q", got)
	}
}
