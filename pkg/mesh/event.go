package mesh

// Event is a meetup organized inside a network.
type Event struct {
	ID          ID     `json:"id"`
	NetworkID   ID     `json:"id_network"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"event_date"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Where returns the place the event happens (not its street address).
func (e Event) Where() Location {
	return Location{City: e.City, Region: e.Region, Country: e.Country}
}

// User is a CultureMesh member. Network membership is read through a source,
// not embedded.
type User struct {
	ID        ID      `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	ImageLink *string `json:"img_link"`
}
