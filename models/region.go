package models

// Region carries the sales-tax rates used to estimate item tax when a receipt
// does not state one. Rates are percentages.
type Region struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Province string  `json:"province,omitempty"`
	GST      float64 `json:"gst,omitempty"`
	PST      float64 `json:"pst,omitempty"`
	HST      float64 `json:"hst,omitempty"`
}

// CombinedRate is the total sales-tax percentage for the region.
func (r Region) CombinedRate() float64 {
	return r.GST + r.PST + r.HST
}

var Regions = []Region{
	{ID: "on", Name: "Ontario", Country: "Canada", Province: "ON", HST: 13},
	{ID: "bc", Name: "British Columbia", Country: "Canada", Province: "BC", GST: 5, PST: 7},
	{ID: "ab", Name: "Alberta", Country: "Canada", Province: "AB", GST: 5},
	{ID: "qc", Name: "Quebec", Country: "Canada", Province: "QC", GST: 5, PST: 9.975},
	{ID: "mb", Name: "Manitoba", Country: "Canada", Province: "MB", GST: 5, PST: 7},
	{ID: "sk", Name: "Saskatchewan", Country: "Canada", Province: "SK", GST: 5, PST: 6},
	{ID: "ns", Name: "Nova Scotia", Country: "Canada", Province: "NS", HST: 15},
	{ID: "nb", Name: "New Brunswick", Country: "Canada", Province: "NB", HST: 15},
	{ID: "nl", Name: "Newfoundland and Labrador", Country: "Canada", Province: "NL", HST: 15},
	{ID: "pe", Name: "Prince Edward Island", Country: "Canada", Province: "PE", HST: 15},
}

// RegionByID looks up a region; ok is false for unknown IDs.
func RegionByID(id string) (Region, bool) {
	for _, r := range Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
