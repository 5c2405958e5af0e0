// Package timezone converts between the UTC storage timezone and arbitrary
// IANA display timezones. Session times are persisted in UTC and rendered in
// whatever zone the caller asks for.
package timezone

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	cache "github.com/patrickmn/go-cache"
)

// Layout is the wire format for localized session times.
const Layout = "2006-01-02 15:04"

// AuthoringZone is the fixed zone fixture data is written in.
const AuthoringZone = "Asia/Kolkata"

// ErrInvalidTimezone is returned when a zone name is not a recognized IANA
// identifier.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Resolved locations are cached: LoadLocation parses the embedded tzdata on
// every call otherwise, and the catalog resolves the same zone per request.
var locations = cache.New(cache.NoExpiration, cache.NoExpiration)

// Location resolves an IANA zone name, caching the result.
func Location(tzName string) (*time.Location, error) {
	if cached, ok := locations.Get(tzName); ok {
		return cached.(*time.Location), nil
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tzName)
	}

	locations.SetDefault(tzName, loc)
	return loc, nil
}

// ToLocal renders a UTC instant in the named zone.
func ToLocal(utc time.Time, tzName string) (string, error) {
	loc, err := Location(tzName)
	if err != nil {
		return "", err
	}
	return utc.In(loc).Format(Layout), nil
}

// ToUTC parses a local datetime string in the named zone and returns the UTC
// instant. The seed loader uses this with AuthoringZone to author fixtures.
func ToUTC(local string, tzName string) (time.Time, error) {
	loc, err := Location(tzName)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(Layout, local, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse local time %q: %w", local, err)
	}
	return t.UTC(), nil
}
