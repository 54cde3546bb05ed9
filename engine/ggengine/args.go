// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggengine

import (
	"fmt"

	"github.com/gogpu/enginehost/engine"
	"github.com/gogpu/enginehost/surface"
)

func wantArgs(name string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", engine.ErrBadArgument, name, n, len(args))
	}
	return nil
}

func floatArg(name string, args []any, i int) (float64, error) {
	switch v := args[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s argument %d is %T, want number", engine.ErrBadArgument, name, i, args[i])
	}
}

func stringArg(name string, args []any, i int) (string, error) {
	switch v := args[i].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %s argument %d is %T, want string", engine.ErrBadArgument, name, i, args[i])
	}
}

func rgbaArg(name string, args []any, i int) ([4]float64, error) {
	switch v := args[i].(type) {
	case [4]float64:
		return v, nil
	case []float64:
		if len(v) == 4 {
			return [4]float64{v[0], v[1], v[2], v[3]}, nil
		}
	}
	return [4]float64{}, fmt.Errorf("%w: %s argument %d must be four numbers", engine.ErrBadArgument, name, i)
}

func surfaceArg(name string, args []any, i int) (surface.Descriptor, error) {
	switch v := args[i].(type) {
	case surface.Descriptor:
		return v, nil
	case *surface.Descriptor:
		if v != nil {
			return *v, nil
		}
	}
	return surface.Descriptor{}, fmt.Errorf("%w: %s argument %d must be a surface", engine.ErrBadArgument, name, i)
}
