package roadparser

import (
	"log"
	"os"
	"strconv"

	"github.com/mapandra/roadroute/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Accepted property key spellings. The source data is not consistent about
// casing or field names, so every spelling is resolved once here and nowhere
// else.
var (
	speedKeys     = []string{"speed", "Speed", "maxSpeed"}
	directionKeys = []string{"pathDirection", "PathDirection", "direction"}
	levelKeys     = []string{"level", "Level"}
	roadClassKeys = []string{"roadClass", "RoadClass", "class"}
)

// LoadRoadFeatures reads a GeoJSON FeatureCollection of road features from a
// file.
func LoadRoadFeatures(path string) ([]datastructure.RoadFeature, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoadFeatures(buf)
}

// ParseRoadFeatures decodes road features from GeoJSON. Features with
// malformed geometry or attributes are skipped, never fatal: a bad feature
// costs one road, not the whole build.
func ParseRoadFeatures(data []byte) ([]datastructure.RoadFeature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	features := make([]datastructure.RoadFeature, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		if !ok || len(line) < 2 {
			skipped++
			continue
		}

		points := make([]datastructure.Coordinate, 0, len(line))
		for _, pt := range line {
			points = append(points, datastructure.NewCoordinate(pt.X(), pt.Y()))
		}

		features = append(features, datastructure.RoadFeature{
			Points:    points,
			Speed:     parseSpeed(f.Properties),
			Direction: datastructure.ParsePathDirection(propString(f.Properties, directionKeys)),
			Level:     parseLevel(f.Properties),
			RoadClass: propString(f.Properties, roadClassKeys),
		})
	}

	if skipped > 0 {
		log.Printf("skipped %d road features with malformed geometry", skipped)
	}
	return features, nil
}

func propValue(props geojson.Properties, keys []string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := props[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func propString(props geojson.Properties, keys []string) string {
	v, ok := propValue(props, keys)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// parseSpeed returns 0 when the speed is absent or malformed. A zero speed
// segment builds no edges (impassable), which matches how missing speeds must
// behave.
func parseSpeed(props geojson.Properties) float64 {
	v, ok := propValue(props, speedKeys)
	if !ok {
		return 0
	}
	switch s := v.(type) {
	case float64:
		return s
	case string:
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// parseLevel defaults to surface level 0 on absent or non-numeric values.
func parseLevel(props geojson.Properties) int {
	v, ok := propValue(props, levelKeys)
	if !ok {
		return 0
	}
	switch l := v.(type) {
	case float64:
		return int(l)
	case string:
		parsed, err := strconv.Atoi(l)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
