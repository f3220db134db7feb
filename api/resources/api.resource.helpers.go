package resources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/ikigain/ForestOS/api/middleware"
	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

var queryDecoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

var (
	respondWithJSON  = middleware.RespondWithJSON
	respondWithError = middleware.RespondWithError
)

// limitBounds is the default and maximum page size of one endpoint family.
type limitBounds struct {
	def int
	max int
}

var (
	defaultLimits   = limitBounds{def: 100, max: 100}
	searchLimits    = limitBounds{def: 20, max: 100}
	careLimits      = limitBounds{def: 50, max: 100}
	readingLimits   = limitBounds{def: 100, max: 1000}
	historyLimits   = limitBounds{def: 100, max: 500}
	maxReadingHours = 168
	maxHistoryDays  = 365
)

func principal(r *http.Request) *auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("invalid request body", err)
	}
	return nil
}

func decodeValues(values url.Values, dst any) error {
	if err := queryDecoder.Decode(dst, values); err != nil {
		return errors.NewValidationError("invalid query parameters", err)
	}
	return nil
}

// pageParams decodes skip and limit and rejects values outside b.
func pageParams(r *http.Request, b limitBounds) (models.Page, error) {
	page := models.Page{Limit: b.def}
	if err := decodeValues(r.URL.Query(), &page); err != nil {
		return page, err
	}
	if page.Skip < 0 {
		return page, errors.NewValidationError("skip must be at least 0", nil)
	}
	if page.Limit < 1 || page.Limit > b.max {
		return page, errors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", b.max), nil)
	}
	return page, nil
}

// intParam reads an optional integer query parameter bounded to [min, max].
func intParam(r *http.Request, name string, min, max int) (*int, error) {
	var holder struct {
		Value *int `schema:"value"`
	}
	raw, ok := r.URL.Query()[name]
	if !ok {
		return nil, nil
	}
	if err := decodeValues(url.Values{"value": raw}, &holder); err != nil {
		return nil, err
	}
	if holder.Value == nil || *holder.Value < min || *holder.Value > max {
		return nil, errors.NewValidationError(fmt.Sprintf("%s must be between %d and %d", name, min, max), nil)
	}
	return holder.Value, nil
}
