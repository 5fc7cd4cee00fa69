package envflat

import "errors"

// ErrReadBytesNotSupported is returned by ReadBytes on environment providers.
var ErrReadBytesNotSupported = errors.New("envflat: ReadBytes not supported, use Read() instead")
