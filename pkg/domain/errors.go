package domain

import "errors"

// ErrMaterialNotFound is returned when an item id cannot be found in a catalog source.
var ErrMaterialNotFound = errors.New("material not found")

// ErrGameDirInvalid is returned when an installation directory lacks the required data subpath.
var ErrGameDirInvalid = errors.New("invalid game directory")

// ErrNoDocument is returned when a session is constructed without a mesh document.
var ErrNoDocument = errors.New("no mesh document")
