package model

import (
	"fmt"
	"strings"
)

// Entity identifies a record collection served by the API.
type Entity string

// Known entities.
const (
	EntityProperties        Entity = "properties"
	EntityPortfolios        Entity = "portfolios"
	EntityConsultants       Entity = "consultants"
	EntityAgencies          Entity = "agencies"
	EntityCountries         Entity = "countries"
	EntityBookingChannels   Entity = "booking-channels"
	EntityAccommodationLogs Entity = "accommodation-logs"
	EntityBedNightReport    Entity = "bed-night-report"
)

// Entities lists every entity in dashboard tab order.
var Entities = []Entity{
	EntityAccommodationLogs,
	EntityBedNightReport,
	EntityProperties,
	EntityPortfolios,
	EntityConsultants,
	EntityAgencies,
	EntityCountries,
	EntityBookingChannels,
}

var entityAliases = map[string]Entity{
	"property":          EntityProperties,
	"portfolio":         EntityPortfolios,
	"consultant":        EntityConsultants,
	"agency":            EntityAgencies,
	"country":           EntityCountries,
	"booking-channel":   EntityBookingChannels,
	"channels":          EntityBookingChannels,
	"accommodation-log": EntityAccommodationLogs,
	"logs":              EntityAccommodationLogs,
	"bed-nights":        EntityAccommodationLogs,
	"report":            EntityBedNightReport,
}

// ParseEntity resolves an entity name or one of its aliases.
func ParseEntity(s string) (Entity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	for _, e := range Entities {
		if string(e) == name {
			return e, nil
		}
	}
	if e, ok := entityAliases[name]; ok {
		return e, nil
	}
	return "", fmt.Errorf("unknown entity %q", s)
}

// Path returns the API path of the entity's list endpoint.
func (e Entity) Path() string {
	switch e {
	case EntityBedNightReport:
		return "/reports/bed-nights"
	default:
		return "/" + string(e)
	}
}

// Title returns a human-readable name.
func (e Entity) Title() string {
	switch e {
	case EntityProperties:
		return "Properties"
	case EntityPortfolios:
		return "Portfolios"
	case EntityConsultants:
		return "Consultants"
	case EntityAgencies:
		return "Agencies"
	case EntityCountries:
		return "Countries"
	case EntityBookingChannels:
		return "Booking Channels"
	case EntityAccommodationLogs:
		return "Bed Nights"
	case EntityBedNightReport:
		return "Bed Night Report"
	default:
		return string(e)
	}
}

// Mutable reports whether the API accepts upserts and deletes for the entity.
func (e Entity) Mutable() bool {
	return e != EntityBedNightReport
}
