package humandesign

import (
	"fmt"
	"math"

	"meridian/internal/astro/transform"
)

// The Human Design wheel divides the ecliptic into 64 gates of 360/64
// degrees, each split into 6 lines. Gate boundaries do not align with sign
// boundaries: the wheel starts at 28°15' Pisces, the opening of gate 25.
const (
	gateSpanDeg   = 360.0 / 64
	lineSpanDeg   = gateSpanDeg / 6
	wheelStartDeg = 358.25
)

// Gate is one wheel entry: I Ching hexagram number and traditional name.
type Gate struct {
	Number int
	Name   string
}

// wheelGates lists the 64 gates in zodiacal order from the wheel start.
var wheelGates = [64]Gate{
	{25, "Innocence"}, {17, "Following"}, {21, "The Hunter/Huntress"},
	{51, "The Arousing"}, {42, "Increase"}, {3, "Ordering"},
	{27, "Nourishment"}, {24, "Return"}, {2, "The Receptive"},
	{23, "Splitting Apart"}, {8, "Contribution"}, {20, "Contemplation"},
	{16, "Skills"}, {35, "Progress"}, {45, "Gathering Together"},
	{12, "Standstill"}, {15, "Modesty"}, {52, "Inaction"},
	{39, "Obstruction"}, {53, "Development"}, {62, "Preponderance of the Small"},
	{56, "The Wanderer"}, {31, "Influence"}, {33, "Retreat"},
	{7, "The Army"}, {4, "Youthful Folly"}, {29, "The Abysmal"},
	{59, "Dispersion"}, {40, "Deliverance"}, {64, "Before Completion"},
	{47, "Oppression"}, {6, "Conflict"}, {46, "Pushing Upward"},
	{18, "Work on What Has Been Spoiled"}, {48, "The Well"}, {57, "The Gentle"},
	{32, "Duration"}, {50, "The Caldron"}, {28, "The Game Player"},
	{44, "Coming to Meet"}, {1, "The Creative"}, {43, "Breakthrough"},
	{14, "Power Skills"}, {34, "The Power of the Great"},
	{9, "The Taming Power of the Small"}, {5, "Waiting"},
	{26, "The Taming Power of the Great"}, {11, "Peace"},
	{10, "Treading"}, {58, "The Joyous"}, {38, "Opposition"},
	{54, "The Marrying Maiden"}, {61, "Inner Truth"}, {60, "Limitation"},
	{41, "Decrease"}, {19, "Wanting"}, {13, "The Listener"},
	{49, "Revolution"}, {30, "Recognition"}, {55, "Spirit"},
	{37, "The Family"}, {63, "After Completion"}, {22, "Grace"},
	{36, "Darkening of the Light"},
}

// GatePlacement is a position on the wheel: the covering gate and its line
// (1 through 6).
type GatePlacement struct {
	Gate int
	Name string
	Line int
}

// Label renders the conventional gate.line notation, e.g. "25.3".
func (p GatePlacement) Label() string {
	return fmt.Sprintf("%d.%d", p.Gate, p.Line)
}

// GateAt locates the gate and line covering an ecliptic longitude.
func GateAt(lonDeg float64) GatePlacement {
	offset := transform.NormalizeDeg(lonDeg - wheelStartDeg)
	idx := int(offset / gateSpanDeg)
	if idx > 63 {
		idx = 63
	}
	line := int(math.Mod(offset, gateSpanDeg)/lineSpanDeg) + 1
	if line > 6 {
		line = 6
	}
	g := wheelGates[idx]
	return GatePlacement{Gate: g.Number, Name: g.Name, Line: line}
}
