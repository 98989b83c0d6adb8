package http

import (
	"errors"

	"github.com/MKhiriev/token-guard/internal/app"
)

var (
	errUnknownEngine = errors.New(app.MsgUnknownEngine)
	errInvalidLimit  = errors.New(app.MsgInvalidLimit)
)
