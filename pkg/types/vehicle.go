package types

// Vehicle is the snapshot of the vehicle a quote is being prepared for.
// Make and Model are the only fields the wizard requires for manual entry;
// everything else is carried over from the source record when available.
type Vehicle struct {
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          *int    `json:"year,omitempty"`
	Plate         string  `json:"plate,omitempty"`
	ColorCode     string  `json:"color_code,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	Mileage       *int    `json:"mileage,omitempty"`
	DeliveryDate  *string `json:"delivery_date,omitempty"`
	PickupDate    *string `json:"pickup_date,omitempty"`
	LoanerVehicle *bool   `json:"loaner_vehicle,omitempty"`
}

// HasIdentity reports whether the vehicle carries enough data to start a quote.
func (v Vehicle) HasIdentity() bool {
	return v.Make != "" && v.Model != ""
}
