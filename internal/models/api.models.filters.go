// FilePath: internal/models/api.models.filters.go
package models

// Page is the skip/limit pair every list endpoint accepts.
type Page struct {
	Skip  int `schema:"skip"`
	Limit int `schema:"limit"`
}

// AlertFilters narrows the alert listing.
type AlertFilters struct {
	IsRead *bool `schema:"is_read"`
}
