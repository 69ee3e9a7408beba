package domain

// BodyID identifies a celestial body across the pipeline. IDs are stable
// lowercase tokens; display names live in Body.Name.
type BodyID string

const (
	BodySun       BodyID = "sun"
	BodyMoon      BodyID = "moon"
	BodyMercury   BodyID = "mercury"
	BodyVenus     BodyID = "venus"
	BodyMars      BodyID = "mars"
	BodyJupiter   BodyID = "jupiter"
	BodySaturn    BodyID = "saturn"
	BodyUranus    BodyID = "uranus"
	BodyNeptune   BodyID = "neptune"
	BodyPluto     BodyID = "pluto"
	BodyNorthNode BodyID = "north_node"
	BodySouthNode BodyID = "south_node"
	BodyLilith    BodyID = "lilith"
	BodyChiron    BodyID = "chiron"
	BodyCeres     BodyID = "ceres"
	BodyPallas    BodyID = "pallas"
	BodyJuno      BodyID = "juno"
	BodyVesta     BodyID = "vesta"
)

// BodyCategory groups bodies for feature tagging and filtering.
type BodyCategory string

const (
	CategoryPlanet     BodyCategory = "planet"
	CategoryAsteroid   BodyCategory = "asteroid"
	CategoryLunarPoint BodyCategory = "lunar-point"
	CategoryLot        BodyCategory = "lot"
	CategoryFixedStar  BodyCategory = "fixed-star"
)

// Position is an ecliptic position snapshot as returned by a
// PositionProvider: degrees for angles, astronomical units (or provider
// units) for distance.
type Position struct {
	Longitude float64
	Latitude  float64
	Distance  float64
}

// Body is an immutable snapshot of one body at one instant. It is recomputed
// per request and never mutated in place.
type Body struct {
	ID       BodyID
	Name     string
	Category BodyCategory
	Position Position
}

// bodyInfo pairs display names with categories for the canonical set.
var bodyInfo = map[BodyID]struct {
	name     string
	category BodyCategory
}{
	BodySun:       {"Sun", CategoryPlanet},
	BodyMoon:      {"Moon", CategoryPlanet},
	BodyMercury:   {"Mercury", CategoryPlanet},
	BodyVenus:     {"Venus", CategoryPlanet},
	BodyMars:      {"Mars", CategoryPlanet},
	BodyJupiter:   {"Jupiter", CategoryPlanet},
	BodySaturn:    {"Saturn", CategoryPlanet},
	BodyUranus:    {"Uranus", CategoryPlanet},
	BodyNeptune:   {"Neptune", CategoryPlanet},
	BodyPluto:     {"Pluto", CategoryPlanet},
	BodyNorthNode: {"North Node", CategoryLunarPoint},
	BodySouthNode: {"South Node", CategoryLunarPoint},
	BodyLilith:    {"Black Moon Lilith", CategoryLunarPoint},
	BodyChiron:    {"Chiron", CategoryAsteroid},
	BodyCeres:     {"Ceres", CategoryAsteroid},
	BodyPallas:    {"Pallas Athena", CategoryAsteroid},
	BodyJuno:      {"Juno", CategoryAsteroid},
	BodyVesta:     {"Vesta", CategoryAsteroid},
}

// DefaultBodies is the canonical computation order. Keeping the order fixed
// keeps assembled feature collections deterministic across requests.
var DefaultBodies = []BodyID{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
	BodyNorthNode, BodySouthNode, BodyLilith, BodyChiron,
}

// ExtendedBodies adds the main-belt asteroids to the default set.
var ExtendedBodies = append(append([]BodyID{}, DefaultBodies...),
	BodyCeres, BodyPallas, BodyJuno, BodyVesta)

// DisplayName returns the human-readable name for id, falling back to the
// raw id for synthetic bodies (lots, stars) registered elsewhere.
func DisplayName(id BodyID) string {
	if info, ok := bodyInfo[id]; ok {
		return info.name
	}
	return string(id)
}

// CategoryOf returns the category for a canonical body id.
func CategoryOf(id BodyID) BodyCategory {
	if info, ok := bodyInfo[id]; ok {
		return info.category
	}
	return CategoryPlanet
}

// NewBody assembles a Body snapshot for a canonical id.
func NewBody(id BodyID, pos Position) Body {
	return Body{ID: id, Name: DisplayName(id), Category: CategoryOf(id), Position: pos}
}
