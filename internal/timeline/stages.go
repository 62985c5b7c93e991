package timeline

// Stage is one epoch of the show. Index is its position in Stages.
type Stage struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

const (
	// StageCount is the number of epochs in the show.
	StageCount = 10
	// StageDuration is how long each epoch is on screen, in seconds.
	StageDuration = 10.0
	// DefaultStep is the nominal per-frame increment (60 fps).
	DefaultStep = 1.0 / 60.0
)

// Stages is the fixed, ordered epoch table.
var Stages = [StageCount]Stage{
	{0, "Formation of Earth and Moon", "4.6B years ago: Theia collides with Earth, forming the Moon."},
	{1, "Oceans and Atmosphere", "Volcanic outgassing creates the atmosphere; water condenses into oceans."},
	{2, "Origin of Life", "Primordial soup forms amino acids; life begins near deep-sea vents."},
	{3, "Complex Life", "Cambrian explosion: plants evolve, oxygen rises."},
	{4, "Continental Drift", "Pangea forms and splits into modern continents."},
	{5, "Ice Ages", "Glaciers cover Earth, CO₂ levels shift climate."},
	{6, "Asteroid Impact", "Chicxulub impact wipes out dinosaurs with dust clouds."},
	{7, "Volcanism", "Supervolcanoes erupt, blocking sunlight with ash."},
	{8, "Human Civilization", "Humans migrate from Africa, build cities."},
	{9, "Space Colonization", "Moon bases and Mars terraforming begin."},
}

// StageIndexAt maps elapsed seconds to a stage index, clamped into
// [0, StageCount-1]. Negative and NaN inputs map to 0.
func StageIndexAt(elapsed float64) int {
	if !(elapsed > 0) {
		return 0
	}
	k := elapsed / StageDuration
	if k >= StageCount-1 {
		return StageCount - 1
	}
	return int(k)
}

// StageStart returns the elapsed time at which stage k begins.
func StageStart(k int) float64 { return float64(k) * StageDuration }
