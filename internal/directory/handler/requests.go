package handler

import (
	"net/url"
	"strconv"
	"strings"

	"standsdir/internal/directory/models"
	"standsdir/internal/directory/service"
	"standsdir/internal/location"
	dErrors "standsdir/pkg/domain-errors"
)

const (
	maxListLimit   = 500
	maxFieldLength = 200
)

// ListBuildersQuery holds the query parameters of GET /builders.
type ListBuildersQuery struct {
	Country string
	City    string
	Limit   int
}

func parseListBuildersQuery(q url.Values) (ListBuildersQuery, error) {
	out := ListBuildersQuery{
		Country: strings.TrimSpace(q.Get("country")),
		City:    strings.TrimSpace(q.Get("city")),
	}
	if len(out.Country) > maxFieldLength || len(out.City) > maxFieldLength {
		return out, dErrors.New(dErrors.CodeValidation, "location parameters are too long")
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxListLimit {
			return out, dErrors.New(dErrors.CodeValidation, "limit must be between 0 and 500")
		}
		out.Limit = n
	}
	return out, nil
}

func (q ListBuildersQuery) Request() location.Request {
	return location.Request{Country: q.Country, City: q.City}
}

func parsePageKind(q url.Values) (models.PageKind, error) {
	kind := models.PageKind(strings.ToLower(strings.TrimSpace(q.Get("type"))))
	if kind == "" {
		return models.PageKindCountry, nil
	}
	if !kind.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "type must be country or city")
	}
	return kind, nil
}

// SubmitLeadRequest is the body of POST /leads.
type SubmitLeadRequest struct {
	CompanyName    string  `json:"company_name"`
	ContactEmail   string  `json:"contact_email"`
	TradeShowName  string  `json:"trade_show_name"`
	Country        string  `json:"country"`
	City           string  `json:"city"`
	EstimatedValue float64 `json:"estimated_value"`
	StandSize      string  `json:"stand_size"`
	EventDate      string  `json:"event_date"`
}

// Validate trims the request in place and checks required fields.
func (r *SubmitLeadRequest) Validate() error {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.TradeShowName = strings.TrimSpace(r.TradeShowName)
	r.Country = strings.TrimSpace(r.Country)
	r.City = strings.TrimSpace(r.City)
	r.StandSize = strings.TrimSpace(r.StandSize)
	r.EventDate = strings.TrimSpace(r.EventDate)

	switch {
	case r.CompanyName == "":
		return dErrors.New(dErrors.CodeValidation, "company_name is required")
	case r.ContactEmail == "":
		return dErrors.New(dErrors.CodeValidation, "contact_email is required")
	case r.Country == "":
		return dErrors.New(dErrors.CodeValidation, "country is required")
	case r.EstimatedValue < 0:
		return dErrors.New(dErrors.CodeValidation, "estimated_value cannot be negative")
	}
	for _, f := range []string{r.CompanyName, r.ContactEmail, r.TradeShowName, r.Country, r.City, r.StandSize, r.EventDate} {
		if len(f) > maxFieldLength {
			return dErrors.New(dErrors.CodeValidation, "field exceeds maximum length")
		}
	}
	return nil
}

func (r *SubmitLeadRequest) Command() service.SubmitLeadCommand {
	return service.SubmitLeadCommand{
		CompanyName:    r.CompanyName,
		ContactEmail:   r.ContactEmail,
		TradeShowName:  r.TradeShowName,
		Country:        r.Country,
		City:           r.City,
		EstimatedValue: r.EstimatedValue,
		StandSize:      r.StandSize,
		EventDate:      r.EventDate,
	}
}
