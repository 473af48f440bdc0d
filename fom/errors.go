package fom

import "errors"

// ErrScalingFailed is returned by Wilson when fewer than two usable pairs
// are available to fit the relative-B scale, or the linear solve is
// singular.
var ErrScalingFailed = errors.New("fom: wilson scaling failed")
