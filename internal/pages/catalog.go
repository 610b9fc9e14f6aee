package pages

import (
	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
)

var catalog = map[model.Entity]func() Page{
	model.EntityProperties:        properties,
	model.EntityPortfolios:        portfolios,
	model.EntityConsultants:       consultants,
	model.EntityAgencies:          agencies,
	model.EntityCountries:         countries,
	model.EntityBookingChannels:   bookingChannels,
	model.EntityAccommodationLogs: accommodationLogs,
	model.EntityBedNightReport:    bedNightReport,
}

var recentFirst = listview.SortSpec{Field: "updated_at", Ascending: false}

var byName = listview.SortSpec{Field: "name", Ascending: true}

var updatedColumn = Column{Field: "updated_at", Title: "Updated", Width: 3, Format: FormatDate}

func properties() Page {
	return Page{
		Entity: model.EntityProperties,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 5},
			{Field: "portfolio_name", Title: "Portfolio", Width: 4},
			{Field: "country_name", Title: "Country", Width: 3},
			{Field: "is_active", Title: "Active", Width: 2, Format: FormatBool},
			updatedColumn,
		},
		SearchFields: []string{"name", "portfolio_name", "country_name"},
		Filters: []listview.Filter{
			listview.OneOf(KeyCountry, "country_name", NoCountry),
			listview.OneOf(KeyPortfolio, "portfolio_name", ""),
			listview.Bool(KeyActive, "is_active"),
		},
		DefaultSort: recentFirst,
		PerPage:     EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "portfolio_name", Label: "Portfolio", Required: true},
			{Field: "country_name", Label: "Country", Required: true},
			{Field: "is_active", Label: "Active", Kind: KindBool},
		},
	}
}

func portfolios() Page {
	return Page{
		Entity: model.EntityPortfolios,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 5},
			{Field: "description", Title: "Description", Width: 7},
			updatedColumn,
		},
		SearchFields: []string{"name", "description"},
		DefaultSort:  recentFirst,
		PerPage:      EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "description", Label: "Description"},
		},
	}
}

func consultants() Page {
	return Page{
		Entity: model.EntityConsultants,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 4},
			{Field: "email", Title: "Email", Width: 5},
			{Field: "agency_name", Title: "Agency", Width: 4},
			{Field: "is_active", Title: "Active", Width: 2, Format: FormatBool},
			updatedColumn,
		},
		SearchFields: []string{"name", "email", "agency_name"},
		Filters: []listview.Filter{
			listview.OneOf(KeyAgency, "agency_name", NoAgency),
			listview.Bool(KeyActive, "is_active"),
		},
		DefaultSort: recentFirst,
		PerPage:     EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "email", Label: "Email", Required: true},
			{Field: "agency_name", Label: "Agency"},
			{Field: "is_active", Label: "Active", Kind: KindBool},
		},
	}
}

func agencies() Page {
	return Page{
		Entity: model.EntityAgencies,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 5},
			{Field: "country_name", Title: "Country", Width: 3},
			{Field: "contact_email", Title: "Contact", Width: 5},
			updatedColumn,
		},
		SearchFields: []string{"name", "country_name", "contact_email"},
		Filters: []listview.Filter{
			listview.OneOf(KeyCountry, "country_name", NoCountry),
		},
		DefaultSort: recentFirst,
		PerPage:     EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "country_name", Label: "Country"},
			{Field: "contact_email", Label: "Contact email"},
		},
	}
}

func countries() Page {
	return Page{
		Entity: model.EntityCountries,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 5},
			{Field: "code", Title: "Code", Width: 2},
		},
		SearchFields: []string{"name", "code"},
		DefaultSort:  byName,
		PerPage:      EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "code", Label: "Code", Required: true},
		},
	}
}

func bookingChannels() Page {
	return Page{
		Entity: model.EntityBookingChannels,
		Columns: []Column{
			{Field: "name", Title: "Name", Width: 5},
			{Field: "description", Title: "Description", Width: 7},
		},
		SearchFields: []string{"name", "description"},
		DefaultSort:  byName,
		PerPage:      EntityPerPage,
		EditFields: []EditField{
			{Field: "name", Label: "Name", Required: true},
			{Field: "description", Label: "Description"},
		},
	}
}

func bedNightColumns() []Column {
	return []Column{
		{Field: "date_in", Title: "Check-in", Width: 3, Format: FormatDate},
		{Field: "date_out", Title: "Check-out", Width: 3, Format: FormatDate},
		{Field: "property_name", Title: "Property", Width: 4},
		{Field: "country_name", Title: "Country", Width: 3},
		{Field: "agency_name", Title: "Agency", Width: 3},
		{Field: "booking_channel_name", Title: "Channel", Width: 3},
		{Field: "bed_nights", Title: "Bed nights", Width: 2, Format: FormatNumber},
	}
}

func bedNightFilters() []listview.Filter {
	return []listview.Filter{
		listview.StayOverlap(KeyStartDate, KeyEndDate, "date_in", "date_out"),
		listview.OneOf(KeyCountry, "country_name", NoCountry),
		listview.OneOf(KeyPortfolio, "portfolio_name", ""),
		listview.OneOf(KeyProperty, "property_name", NoProperty),
		listview.OneOf(KeyAgency, "agency_name", NoAgency),
		listview.OneOf(KeyBookingChannel, "booking_channel_name", Direct),
	}
}

// bedNightDropdowns declares the five report dropdowns. Property options only
// follow the country and portfolio selection; the others narrow by everything.
func bedNightDropdowns() []filteropts.Field {
	return []filteropts.Field{
		{Key: KeyCountry, Source: "country_name", Fallback: NoCountry},
		{Key: KeyPortfolio, Source: "portfolio_name"},
		{Key: KeyProperty, Source: "property_name", Fallback: NoProperty, Upstream: []string{KeyCountry, KeyPortfolio}},
		{Key: KeyAgency, Source: "agency_name", Fallback: NoAgency},
		{Key: KeyBookingChannel, Source: "booking_channel_name", Fallback: Direct},
	}
}

func accommodationLogs() Page {
	return Page{
		Entity:       model.EntityAccommodationLogs,
		Columns:      bedNightColumns(),
		SearchFields: []string{"property_name", "agency_name", "consultant_name", "booking_channel_name"},
		Filters:      bedNightFilters(),
		Exclusions:   []listview.Exclusion{listview.ExcludeValue("booking_channel_name", InternalChannel)},
		DefaultSort:  recentFirst,
		PerPage:      BedNightPerPage,
		EditFields: []EditField{
			{Field: "property_name", Label: "Property", Required: true},
			{Field: "date_in", Label: "Check-in", Kind: KindDate, Required: true},
			{Field: "date_out", Label: "Check-out", Kind: KindDate},
			{Field: "bed_nights", Label: "Bed nights", Kind: KindNumber, Required: true},
			{Field: "agency_name", Label: "Agency"},
			{Field: "booking_channel_name", Label: "Booking channel"},
			{Field: "consultant_name", Label: "Consultant"},
		},
		Dropdowns: bedNightDropdowns(),
	}
}

func bedNightReport() Page {
	return Page{
		Entity:       model.EntityBedNightReport,
		Columns:      bedNightColumns(),
		SearchFields: []string{"property_name", "agency_name", "booking_channel_name"},
		Filters:      bedNightFilters(),
		Exclusions:   []listview.Exclusion{listview.ExcludeValue("booking_channel_name", InternalChannel)},
		DefaultSort:  listview.SortSpec{Field: "date_in", Ascending: false},
		PerPage:      BedNightPerPage,
		Dropdowns:    bedNightDropdowns(),
		QueryKeys:    []string{KeyStartDate, KeyEndDate},
	}
}
