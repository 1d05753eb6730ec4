package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"standsdir/internal/location"
	id "standsdir/pkg/domain"
)

// Record is a loosely shaped builder document as found in imports and seed
// files. Field names vary between camelCase and snake_case, and location data
// may be flat or nested.
type Record map[string]any

var builderIDNamespace = uuid.MustParse("6f1c9a52-0c55-4d7e-9a3e-2b8f4a1d7c10")

// BuilderFromRecord validates a loose record once at the ingestion boundary.
// Missing location fields become empty strings; they never cause an error.
// A non-UUID id is mapped to a stable UUID so re-imports keep the same ID.
func BuilderFromRecord(rec Record) (*Builder, error) {
	name := rec.str("companyName", "company_name", "name")
	rawID := rec.str("id", "_id")
	if rawID == "" && name == "" {
		return nil, fmt.Errorf("builder record has neither id nor name")
	}

	b := &Builder{
		ID:                  builderIDFrom(rawID, name),
		CompanyName:         name,
		Slug:                rec.str("slug"),
		ContactEmail:        rec.str("contactEmail", "contact_email", "email"),
		HeadquartersCountry: rec.str("headquarters_country", "headquartersCountry"),
		HeadquartersCity:    rec.str("headquarters_city", "headquartersCity"),
		Status:              rec.str("status"),
		Verified:            rec.boolean("verified", "isVerified"),
		Premium:             rec.boolean("premiumMember", "premium_member", "premium"),
		Plan:                Plan(strings.ToLower(rec.str("plan", "planType", "plan_type"))),
		Rating:              rec.number("rating"),
	}

	if hq := rec.object("headquarters"); hq != nil {
		if b.HeadquartersCountry == "" {
			b.HeadquartersCountry = hq.str("country")
		}
		if b.HeadquartersCity == "" {
			b.HeadquartersCity = hq.str("city")
		}
	}
	if b.HeadquartersCountry == "" {
		b.HeadquartersCountry = rec.str("country")
	}
	if b.HeadquartersCity == "" {
		b.HeadquartersCity = rec.str("city")
	}
	if b.ContactEmail == "" {
		if info := rec.object("contactInfo", "contact_info"); info != nil {
			b.ContactEmail = info.str("primaryEmail", "primary_email", "email")
		}
	}
	if pr := rec.object("priceRange", "price_range"); pr != nil {
		b.AverageProject = pr.number("averageProject", "average_project")
	}

	b.ServiceLocations = rec.serviceAreas("service_locations", "serviceLocations")
	return b, nil
}

func builderIDFrom(rawID, name string) id.BuilderID {
	if parsed, err := id.ParseBuilderID(rawID); err == nil {
		return parsed
	}
	seed := rawID
	if seed == "" {
		seed = "name:" + strings.ToLower(strings.TrimSpace(name))
	}
	return id.BuilderID(uuid.NewSHA1(builderIDNamespace, []byte(seed)))
}

func (r Record) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r Record) str(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func (r Record) boolean(keys ...string) bool {
	v, ok := r.lookup(keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && parsed
	default:
		return false
	}
}

func (r Record) number(keys ...string) float64 {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (r Record) object(keys ...string) Record {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		return Record(t)
	case Record:
		return t
	default:
		return nil
	}
}

// serviceAreas accepts a list of {country, city} objects or bare country strings.
// Entries with neither field are dropped.
func (r Record) serviceAreas(keys ...string) []location.ServiceArea {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	areas := make([]location.ServiceArea, 0, len(items))
	for _, item := range items {
		var area location.ServiceArea
		switch t := item.(type) {
		case string:
			area.Country = strings.TrimSpace(t)
		case map[string]any:
			obj := Record(t)
			area.Country = obj.str("country")
			area.City = obj.str("city")
		}
		if area.Country == "" && area.City == "" {
			continue
		}
		areas = append(areas, area)
	}
	return areas
}
