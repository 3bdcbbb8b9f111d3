package entity

// BookingFilter holds the optional filters for booking listings
type BookingFilter struct {
	Status string
	Email  string
}
