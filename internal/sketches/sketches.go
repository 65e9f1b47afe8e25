// Package sketches links every built-in sketch into the registry.
package sketches

import (
	_ "penplot/internal/sketches/eclipse"
	_ "penplot/internal/sketches/flowfield"
	_ "penplot/internal/sketches/fmwave"
	_ "penplot/internal/sketches/lsystem"
	_ "penplot/internal/sketches/noisecols"
	_ "penplot/internal/sketches/slices"
	_ "penplot/internal/sketches/spiro"
	_ "penplot/internal/sketches/tube"
)
