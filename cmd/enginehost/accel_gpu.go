//go:build gpu

package main

// Windowed sessions draw canvases through the GPU accelerator when built
// with -tags gpu. The render command swaps it out again (see forceCPU).
import _ "github.com/gogpu/gg/gpu"
