package dto

// AvailabilityResponse lists the booked slot keys for one date so a client
// can grey out taken combinations before attempting a booking.
type AvailabilityResponse struct {
	Date   string   `json:"date"`
	Booked []string `json:"booked"`
}

func FromKeys(date string, keys []string) AvailabilityResponse {
	if keys == nil {
		keys = []string{}
	}

	return AvailabilityResponse{
		Date:   date,
		Booked: keys,
	}
}
