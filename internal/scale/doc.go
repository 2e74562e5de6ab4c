// Package scale holds the pure scale generators and the compiled-in
// defaults of every design dimension: color ramps and the palette catalog,
// the modular type scale, spacing, radius, shadow elevation, grid and
// interaction opacity.
//
// Every function here is deterministic and free of shared mutable state
// apart from the color-scale memo cache, which is safe for concurrent use.
package scale

import "fmt"

// StepName is the "{Category} {index+1}" label of a scale entry. Selection
// lookups resolve preview clicks through the same convention.
func StepName(category string, index int) string {
	return fmt.Sprintf("%s %d", category, index+1)
}
