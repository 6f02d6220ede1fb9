package models

import (
	"encoding/json"
	"time"
)

// Facility is the canonical facility document produced by the collector.
// Optional blocks are pointers so an absent block is distinguishable from an
// empty one. The typed fields are a partial view used for ids and
// projection; Raw keeps the document exactly as it was decoded.
type Facility struct {
	ID         string              `json:"id"`
	Type       string              `json:"type,omitempty"`
	Attributes *FacilityAttributes `json:"attributes,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed view and retains the source bytes.
func (f *Facility) UnmarshalJSON(data []byte) error {
	type view Facility
	var v view
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Facility(v)
	f.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// FacilityAttributes holds the descriptive part of a facility document.
type FacilityAttributes struct {
	Name            string            `json:"name,omitempty"`
	FacilityType    string            `json:"facilityType,omitempty"`
	Classification  string            `json:"classification,omitempty"`
	Website         string            `json:"website,omitempty"`
	Latitude        *float64          `json:"lat,omitempty"`
	Longitude       *float64          `json:"long,omitempty"`
	TimeZone        string            `json:"timeZone,omitempty"`
	Address         *Addresses        `json:"address,omitempty"`
	Phone           *Phone            `json:"phone,omitempty"`
	Hours           map[string]string `json:"hours,omitempty"`
	Services        *Services         `json:"services,omitempty"`
	OperatingStatus *OperatingStatus  `json:"operatingStatus,omitempty"`
	Visn            string            `json:"visn,omitempty"`
}

// Addresses groups the mailing and physical addresses.
type Addresses struct {
	Mailing  *Address `json:"mailing,omitempty"`
	Physical *Address `json:"physical,omitempty"`
}

// Address is a postal address. Zip may carry the +4 routing suffix.
type Address struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	Address3 string `json:"address3,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`
}

type Phone struct {
	Main            string `json:"main,omitempty"`
	Fax             string `json:"fax,omitempty"`
	Pharmacy        string `json:"pharmacy,omitempty"`
	AfterHours      string `json:"afterHours,omitempty"`
	PatientAdvocate string `json:"patientAdvocate,omitempty"`
}

// Services lists the service codes offered, split by line of business.
type Services struct {
	Health      []string   `json:"health,omitempty"`
	Benefits    []string   `json:"benefits,omitempty"`
	Other       []string   `json:"other,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// OperatingStatus is the current open/closed notice for a facility.
type OperatingStatus struct {
	Code           string `json:"code,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}
