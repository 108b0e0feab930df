package scheduler

import "regexp"

// DistanceEstimator approximates the driving distance in miles between two
// ZIP codes.
type DistanceEstimator interface {
	Miles(zipA, zipB string) int
}

// Distance bands for the ZIP-prefix heuristic. US ZIP codes sharing a
// 3-digit prefix belong to the same sectional center, so prefix overlap is
// a cheap proxy for geographic closeness.
const (
	milesUnknown    = 10
	milesSameArea   = 5
	milesSameRegion = 15
	milesFar        = 25
)

// ZipPrefixEstimator estimates distance from ZIP prefix overlap. When either
// ZIP is missing it assumes a moderate distance rather than penalizing the
// technician for incomplete data.
type ZipPrefixEstimator struct{}

func (ZipPrefixEstimator) Miles(zipA, zipB string) int {
	if len(zipA) < 5 || len(zipB) < 5 {
		return milesUnknown
	}
	if zipA[:3] == zipB[:3] {
		return milesSameArea
	}
	if zipA[:2] == zipB[:2] {
		return milesSameRegion
	}
	return milesFar
}

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// ExtractZip pulls the first 5-digit ZIP code out of a free-form address,
// returning "" when none is present.
func ExtractZip(address string) string {
	return zipPattern.FindString(address)
}
