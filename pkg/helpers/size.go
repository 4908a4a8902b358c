package helpers

import (
	units "github.com/docker/go-units"
	"github.com/pkg/errors"
)

// ParseGigabytes reads a size such as 20, 20G, 20GB or 20GiB and returns
// whole gigabytes. Bare numbers are taken as gigabytes.
func ParseGigabytes(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	if n, err := units.RAMInBytes(s + "g"); err == nil {
		return n / units.GiB, nil
	}

	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid size: %s", s)
	}

	return n / units.GiB, nil
}

// Gigabytes renders a size given in gigabytes for display.
func Gigabytes(gb int64) string {
	return units.BytesSize(float64(gb * units.GiB))
}
