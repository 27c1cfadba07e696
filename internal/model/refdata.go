package model

// Country is a selectable country option.
type Country struct {
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// State is a selectable state or province option, scoped to a country.
type State struct {
	Name        string `json:"name" db:"name"`
	CountryCode string `json:"countryCode" db:"country_code"`
}
