package colour

import "errors"

var (
	// ErrInvalidFormat is returned for hex strings that are not six hex digits.
	ErrInvalidFormat = errors.New("invalid colour format")

	// ErrUnsupportedSchemeKind is returned for scheme kinds outside the fixed set.
	ErrUnsupportedSchemeKind = errors.New("unsupported scheme kind")

	// ErrEmptyPalette is returned when no sampled pixel passes the alpha threshold.
	ErrEmptyPalette = errors.New("no colours found")

	// ErrInvalidImage is returned when a pixel buffer does not match its dimensions.
	ErrInvalidImage = errors.New("invalid pixel buffer")
)
