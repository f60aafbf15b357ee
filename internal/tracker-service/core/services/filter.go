package services

import (
	"math"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"
)

// MaxAccuracyMeters is the fixed accuracy policy. Browser geolocation can
// report fixes hundreds of meters wide; anything above this would place the
// bus visibly wrong for every subscriber on the route.
const MaxAccuracyMeters = 500.0

// ValidateSample is pure validation, the caller forwards accepted samples.
func ValidateSample(s models.LocationSample) error {
	if !isFinite(s.Lat) || !isFinite(s.Lng) {
		return myerrors.ErrInvalidCoordinates
	}
	if s.Accuracy > MaxAccuracyMeters {
		return myerrors.ErrLowAccuracy
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
