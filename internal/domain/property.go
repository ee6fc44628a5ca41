package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Coordinates is the lat/lng pair stored as JSONB on the property row.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Coordinates) Scan(src any) error {
	return scanJSON(src, c)
}

// NeighborhoodInfo describes the area around a property.
type NeighborhoodInfo struct {
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights"`
	WalkScore    int      `json:"walkScore"`
	TransitScore int      `json:"transitScore"`
}

func (n NeighborhoodInfo) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *NeighborhoodInfo) Scan(src any) error {
	return scanJSON(src, n)
}

// Review is a guest review embedded in the property's reviews JSONB column.
type Review struct {
	Author  string  `json:"author"`
	Date    string  `json:"date"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// Reviews scans the whole JSONB array.
type Reviews []Review

func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]Review{})
	}
	return json.Marshal(r)
}

func (r *Reviews) Scan(src any) error {
	return scanJSON(src, r)
}

// Property is a rental listing. The db tags map the lowercase column names
// carried over from the original schema; the json tags are the camelCase
// field names the frontend expects.
type Property struct {
	ID                 string           `db:"id" json:"id"`
	Title              string           `db:"title" json:"title"`
	Location           string           `db:"location" json:"location"`
	Neighborhood       string           `db:"neighborhood" json:"neighborhood"`
	Price              int              `db:"price" json:"price"`
	Rating             float64          `db:"rating" json:"rating"`
	ReviewCount        int              `db:"reviewcount" json:"reviewCount"`
	Images             pq.StringArray   `db:"images" json:"images"`
	Host               string           `db:"host" json:"host"`
	HostImage          string           `db:"hostimage" json:"hostImage"`
	HostJoinedDate     string           `db:"hostjoineddate" json:"hostJoinedDate"`
	Amenities          pq.StringArray   `db:"amenities" json:"amenities"`
	Description        string           `db:"description" json:"description"`
	Bedrooms           int              `db:"bedrooms" json:"bedrooms"`
	Bathrooms          float64          `db:"bathrooms" json:"bathrooms"`
	Beds               int              `db:"beds" json:"beds"`
	Guests             int              `db:"guests" json:"guests"`
	CheckIn            string           `db:"checkin" json:"checkIn"`
	CheckOut           string           `db:"checkout" json:"checkOut"`
	HouseRules         pq.StringArray   `db:"houserules" json:"houseRules"`
	CancellationPolicy string           `db:"cancellationpolicy" json:"cancellationPolicy"`
	Coordinates        Coordinates      `db:"coordinates" json:"coordinates"`
	NeighborhoodInfo   NeighborhoodInfo `db:"neighborhoodinfo" json:"neighborhoodInfo"`
	Reviews            Reviews          `db:"reviews" json:"reviews"`
	ListingID          *string          `db:"listing_id" json:"listing_id,omitempty"`
	HostexWidgetID     *string          `db:"hostexwidgetid" json:"hostexWidgetID,omitempty"`
	ScriptSrc          *string          `db:"scriptsrc" json:"scriptSrc,omitempty"`
	IsActive           bool             `db:"isactive" json:"isActive"`
	CreatedAt          time.Time        `db:"createdat" json:"createdAt"`
	UpdatedAt          time.Time        `db:"updatedat" json:"updatedAt"`
}

// PropertyFilter narrows the public search. Zero values mean "no constraint".
type PropertyFilter struct {
	Location    string
	MinPrice    *int
	MaxPrice    *int
	MinBedrooms *int
	MinGuests   *int
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported source type for JSONB column")
	}
}
