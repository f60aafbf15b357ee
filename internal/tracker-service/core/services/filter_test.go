package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"
)

func sample(lat, lng, accuracy float64) models.LocationSample {
	return models.LocationSample{
		Lat:        lat,
		Lng:        lng,
		Accuracy:   accuracy,
		CapturedAt: time.Now(),
	}
}

func TestValidateSampleAccepts(t *testing.T) {
	cases := []struct {
		name string
		s    models.LocationSample
	}{
		{"typical fix", sample(30.70, 76.78, 50)},
		{"zero accuracy", sample(30.70, 76.78, 0)},
		{"exactly at threshold", sample(30.70, 76.78, MaxAccuracyMeters)},
		{"zero coordinates", sample(0, 0, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateSample(tc.s); err != nil {
				t.Errorf("expected sample to be accepted, got %v", err)
			}
		})
	}
}

func TestValidateSampleRejectsLowAccuracy(t *testing.T) {
	err := ValidateSample(sample(30.70, 76.78, 800))
	if !errors.Is(err, myerrors.ErrLowAccuracy) {
		t.Fatalf("expected ErrLowAccuracy, got %v", err)
	}

	err = ValidateSample(sample(30.70, 76.78, MaxAccuracyMeters+0.1))
	if !errors.Is(err, myerrors.ErrLowAccuracy) {
		t.Fatalf("expected ErrLowAccuracy just above threshold, got %v", err)
	}
}

func TestValidateSampleRejectsNonFiniteCoordinates(t *testing.T) {
	cases := []struct {
		name string
		s    models.LocationSample
	}{
		{"NaN lat", sample(math.NaN(), 76.78, 10)},
		{"NaN lng", sample(30.70, math.NaN(), 10)},
		{"+Inf lat", sample(math.Inf(1), 76.78, 10)},
		{"-Inf lng", sample(30.70, math.Inf(-1), 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSample(tc.s)
			if !errors.Is(err, myerrors.ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}
