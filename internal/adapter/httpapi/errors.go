package httpapi

import "errors"

var (
	errMissingCoordinates = errors.New("lat and lon query parameters are required")
	errInvalidCoordinates = errors.New("lat and lon must be numeric coordinates within range")
)
