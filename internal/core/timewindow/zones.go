package timewindow

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var zonesEmbedded []byte

// abbrevPair holds one zone's standard and daylight abbreviations.
// No-DST zones carry the same value in both slots
type abbrevPair struct {
	Standard string `yaml:"standard"`
	Daylight string `yaml:"daylight"`
}

var (
	zonesOnce sync.Once
	zoneTable map[string]abbrevPair
)

// lookupAbbrev returns the abbreviation pair for an IANA zone id.
// The embedded table is parsed once; a corrupt embed is a build defect and panics
func lookupAbbrev(zone string) (abbrevPair, bool) {
	zonesOnce.Do(func() {
		var raw struct {
			Zones map[string]abbrevPair `yaml:"zones"`
		}
		if err := yaml.Unmarshal(zonesEmbedded, &raw); err != nil {
			panic(fmt.Sprintf("timewindow: parse zones.yaml: %v", err))
		}
		zoneTable = raw.Zones
	})
	ab, ok := zoneTable[zone]
	return ab, ok
}
