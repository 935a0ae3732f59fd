package grouping

import (
	"regexp"

	"motinsight/domain/core"
)

// Component group identifiers. Each clusters the DVSA wording variants that
// describe the same underlying physical failure mode.
const (
	ParkingBrake       core.GroupID = "parking_brake"
	BrakeDiscDrum      core.GroupID = "brake_disc_drum"
	BrakePads          core.GroupID = "brake_pads"
	BrakeLines         core.GroupID = "brake_lines"
	BrakeFluid         core.GroupID = "brake_fluid"
	BrakePerformance   core.GroupID = "brake_performance"
	SuspensionSpring   core.GroupID = "suspension_spring"
	ShockAbsorber      core.GroupID = "shock_absorber"
	SuspensionArm      core.GroupID = "suspension_arm"
	WheelBearing       core.GroupID = "wheel_bearing"
	SteeringLinkage    core.GroupID = "steering_linkage"
	PowerSteering      core.GroupID = "power_steering"
	TyreWear           core.GroupID = "tyre_wear"
	TyreDamage         core.GroupID = "tyre_damage"
	HeadlampAim        core.GroupID = "headlamp_aim"
	LightingBulbs      core.GroupID = "lighting_bulbs"
	Emissions          core.GroupID = "emissions"
	ExhaustSystem      core.GroupID = "exhaust_system"
	WindscreenView     core.GroupID = "windscreen_view"
	WipersWashers      core.GroupID = "wipers_washers"
	StructureCorrosion core.GroupID = "structure_corrosion"
	SeatBelts          core.GroupID = "seat_belts"
	DriveshaftCV       core.GroupID = "driveshaft_cv"
	FuelSystem         core.GroupID = "fuel_system"
)

type rule struct {
	pattern *regexp.Regexp
	group   core.GroupID
}

// defaultRules is the hand-curated decision list mapping DVSA defect wording
// to component groups. ORDER IS LOAD-BEARING: first match wins, so specific
// patterns must precede the general ones they would otherwise be absorbed by
// ("parking brake" before any generic "brake", "headlamp aim" before generic
// lamp wording, "exhaust emissions" before bare "exhaust"). The regression
// test in classifier_test.go pins every rule's canonical example.
var defaultRules = []rule{
	{regexp.MustCompile(`(?i)parking brake|hand ?brake`), ParkingBrake},
	{regexp.MustCompile(`(?i)brake (disc|drum)|(disc|drum) (excessively |seriously )?(worn|pitted|scored|corroded)`), BrakeDiscDrum},
	{regexp.MustCompile(`(?i)brake pad|pads? (worn|less than|below)`), BrakePads},
	{regexp.MustCompile(`(?i)brake (pipe|hose|line)|flexible brake hose`), BrakeLines},
	{regexp.MustCompile(`(?i)brake fluid`), BrakeFluid},
	{regexp.MustCompile(`(?i)service brake|brake (performance|efficiency|effort|imbalance)|brakes imbalanced`), BrakePerformance},
	{regexp.MustCompile(`(?i)(coil|leaf|road) spring|suspension spring`), SuspensionSpring},
	{regexp.MustCompile(`(?i)shock absorber|damper`), ShockAbsorber},
	{regexp.MustCompile(`(?i)suspension (arm|component)|ball joint|bush(es)? (excessively )?(worn|deteriorated)|anti.?roll bar`), SuspensionArm},
	{regexp.MustCompile(`(?i)wheel bearing|hub bearing`), WheelBearing},
	{regexp.MustCompile(`(?i)track rod|steering (rack|linkage|joint|gear)|drag link`), SteeringLinkage},
	{regexp.MustCompile(`(?i)power steering`), PowerSteering},
	{regexp.MustCompile(`(?i)tyre.*(tread|depth|worn)|tread depth`), TyreWear},
	{regexp.MustCompile(`(?i)tyre.*(cut|lump|bulge|cord|tear|perish|damage)`), TyreDamage},
	{regexp.MustCompile(`(?i)(head ?lamp|head ?light) aim|aim (too )?(high|low|out)`), HeadlampAim},
	{regexp.MustCompile(`(?i)lamp|light source|bulb|indicator|reflector`), LightingBulbs},
	{regexp.MustCompile(`(?i)emission|lambda|co content|excessive smoke`), Emissions},
	{regexp.MustCompile(`(?i)exhaust`), ExhaustSystem},
	{regexp.MustCompile(`(?i)windscreen|driver'?s view`), WindscreenView},
	{regexp.MustCompile(`(?i)wiper|washer`), WipersWashers},
	{regexp.MustCompile(`(?i)corro(sion|ded)|structural|chassis|prescribed area|body.*(damaged|insecure)`), StructureCorrosion},
	{regexp.MustCompile(`(?i)seat ?belt`), SeatBelts},
	{regexp.MustCompile(`(?i)drive ?shaft|constant velocity|cv (joint|boot)`), DriveshaftCV},
	{regexp.MustCompile(`(?i)fuel (leak|pipe|tank|system|cap)`), FuelSystem},
}

// displayNames gives each group a reader-facing title for rendered reports.
var displayNames = map[core.GroupID]string{
	ParkingBrake:       "Parking brake",
	BrakeDiscDrum:      "Brake discs and drums",
	BrakePads:          "Brake pads",
	BrakeLines:         "Brake pipes and hoses",
	BrakeFluid:         "Brake fluid",
	BrakePerformance:   "Brake performance",
	SuspensionSpring:   "Suspension springs",
	ShockAbsorber:      "Shock absorbers",
	SuspensionArm:      "Suspension arms and joints",
	WheelBearing:       "Wheel bearings",
	SteeringLinkage:    "Steering linkage",
	PowerSteering:      "Power steering",
	TyreWear:           "Tyre wear",
	TyreDamage:         "Tyre damage",
	HeadlampAim:        "Headlamp aim",
	LightingBulbs:      "Lights and bulbs",
	Emissions:          "Exhaust emissions",
	ExhaustSystem:      "Exhaust system",
	WindscreenView:     "Windscreen and visibility",
	WipersWashers:      "Wipers and washers",
	StructureCorrosion: "Structure and corrosion",
	SeatBelts:          "Seat belts",
	DriveshaftCV:       "Driveshafts and CV joints",
	FuelSystem:         "Fuel system",
}

// DisplayName returns the reader-facing title for a group, or the raw ID when
// the group is unknown.
func DisplayName(g core.GroupID) string {
	if name, ok := displayNames[g]; ok {
		return name
	}
	return string(g)
}
