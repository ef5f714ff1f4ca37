//go:build ta_f32

package core

// TAFloat is the width the catalogue, suite, scripting host and CLI compute
// in. This file is selected by the ta_f32 build tag.
type TAFloat = float32
