package main

import (
	"github.com/gogpu/gg"
)

// cpuRaster is an accelerator that declines every operation, so drawing
// always lands in the context's own pixel buffer.
type cpuRaster struct{}

func (cpuRaster) Name() string                        { return "cpu" }
func (cpuRaster) Init() error                         { return nil }
func (cpuRaster) Close()                              {}
func (cpuRaster) CanAccelerate(gg.AcceleratedOp) bool { return false }
func (cpuRaster) Flush(gg.GPURenderTarget) error      { return nil }

func (cpuRaster) FillPath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (cpuRaster) StrokePath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (cpuRaster) FillShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (cpuRaster) StrokeShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

// forceCPU replaces a registered GPU accelerator with cpuRaster. Headless
// renders read pixels straight from the context, and a GPU accelerator
// without a window device would swallow shape fills.
func forceCPU() error {
	switch gg.Accelerator().(type) {
	case nil, cpuRaster:
		return nil
	}
	return gg.RegisterAccelerator(cpuRaster{})
}

// closeAccelerator releases the registered accelerator's resources.
func closeAccelerator() {
	if a := gg.Accelerator(); a != nil {
		a.Close()
	}
}
