package projection

import "errors"

// All validation failures are raised before any output mutation: a failed
// call leaves the destination in its prior state.

// ErrShapeMismatch reports an axis-selection vector whose length differs
// from the input dimensionality.
var ErrShapeMismatch = errors.New("projection: axis selection length does not match image dimensionality")

// ErrMaskIncompatible reports a mask that is not boolean or whose shape is
// not broadcast-compatible with the input.
var ErrMaskIncompatible = errors.New("projection: mask is not compatible with the input image")

// ErrUnsupportedType reports that no reducer exists for the combination of
// input sample type and reduction kind.
var ErrUnsupportedType = errors.New("projection: unsupported input sample type")

// ErrOutputAliasing reports a destination that is the input or mask image
// itself and therefore cannot be detached before reforging.
var ErrOutputAliasing = errors.New("projection: output image aliases the input or mask")

// ErrUnimplemented reports a requested feature with no implementation,
// such as a percentile strictly between 0 and 100.
var ErrUnimplemented = errors.New("projection: unimplemented")

// ErrNotForged reports an input image without storage attached.
var ErrNotForged = errors.New("projection: input image is not forged")
