package world

import "github.com/paulmach/orb"

// RemoveContained drops every zone whose outer ring lies entirely inside
// another zone. Of two identical zones only the later one is kept. The
// input slice is not modified.
func RemoveContained(zones []orb.Polygon) []orb.Polygon {
	if len(zones) <= 1 {
		return zones
	}

	contained := make([]bool, len(zones))
	for i := range zones {
		if contained[i] {
			continue
		}
		for j := range zones {
			if i == j || contained[j] {
				continue
			}
			if containedIn(zones[i], zones[j]) {
				contained[i] = true
				break
			}
			if containedIn(zones[j], zones[i]) {
				contained[j] = true
			}
		}
	}

	result := make([]orb.Polygon, 0, len(zones))
	for i, zone := range zones {
		if !contained[i] {
			result = append(result, zone)
		}
	}
	return result
}
