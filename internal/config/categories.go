package config

// Help lists categories by ascending weight.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🎵 Music":        10,
	"🛠️ Maintenance": 60,
}
