//go:build !ta_f32

package core

// TAFloat is the width the catalogue, suite, scripting host and CLI compute
// in. Build with -tags ta_f32 to switch the whole module to float32.
type TAFloat = float64
