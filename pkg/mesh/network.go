package mesh

import "encoding/json"

// Network is a community grouping a user can join.
type Network struct {
	ID       ID
	Class    NetworkClass
	Current  Location
	Origin   Location
	Language string // language networks only
	JoinDate string // set when listed as one of a user's networks
}

type networkJSON struct {
	ID            ID           `json:"id"`
	Class         NetworkClass `json:"network_class"`
	CityCur       string       `json:"city_cur,omitempty"`
	RegionCur     string       `json:"region_cur,omitempty"`
	CountryCur    string       `json:"country_cur,omitempty"`
	CityOrigin    string       `json:"city_origin,omitempty"`
	RegionOrigin  string       `json:"region_origin,omitempty"`
	CountryOrigin string       `json:"country_origin,omitempty"`
	Language      string       `json:"language_origin,omitempty"`
	JoinDate      string       `json:"join_date,omitempty"`
}

// MarshalJSON encodes the network in the upstream API's flat field layout.
func (n Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(networkJSON{
		ID:            n.ID,
		Class:         n.Class,
		CityCur:       n.Current.City,
		RegionCur:     n.Current.Region,
		CountryCur:    n.Current.Country,
		CityOrigin:    n.Origin.City,
		RegionOrigin:  n.Origin.Region,
		CountryOrigin: n.Origin.Country,
		Language:      n.Language,
		JoinDate:      n.JoinDate,
	})
}

// UnmarshalJSON decodes the upstream API's flat field layout.
func (n *Network) UnmarshalJSON(data []byte) error {
	var raw networkJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Network{
		ID:       raw.ID,
		Class:    raw.Class,
		Current:  Location{City: raw.CityCur, Region: raw.RegionCur, Country: raw.CountryCur},
		Origin:   Location{City: raw.CityOrigin, Region: raw.RegionOrigin, Country: raw.CountryOrigin},
		Language: raw.Language,
		JoinDate: raw.JoinDate,
	}
	return nil
}
