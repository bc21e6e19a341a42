// internal/domain/entity/service_records.go
package entity

// FlightBooking is stored in flightBookings
type FlightBooking struct {
	BaseRecord      `bson:",inline"`
	From            string  `json:"from" bson:"from"`
	To              string  `json:"to" bson:"to"`
	FlightDate      string  `json:"flightDate" bson:"flightDate"`
	Sector          string  `json:"sector" bson:"sector"`
	TourManagerCost float64 `json:"tourManagerCost" bson:"tourManagerCost"`
	CarCost         float64 `json:"carCost" bson:"carCost"`
}

// HotelReservation is stored in hotelReservations
type HotelReservation struct {
	BaseRecord   `bson:",inline"`
	HotelName    string `json:"hotelName" bson:"hotelName"`
	CheckInDate  string `json:"checkInDate" bson:"checkInDate"`
	CheckOutDate string `json:"checkOutDate" bson:"checkOutDate"`
}

// CarRental is stored in carRentals
type CarRental struct {
	BaseRecord  `bson:",inline"`
	Destination string `json:"destination" bson:"destination"`
	Date        string `json:"date" bson:"date"`
	Seaters     int    `json:"seaters" bson:"seaters"`
}

// Visa is stored in visas
type Visa struct {
	BaseRecord      `bson:",inline"`
	Country         string `json:"country" bson:"country"`
	ApplicationDate string `json:"applicationDate" bson:"applicationDate"`
}

// ForeignExchange is stored in foreignExchanges
type ForeignExchange struct {
	BaseRecord `bson:",inline"`
	Currency   string  `json:"currency" bson:"currency"`
	Rate       float64 `json:"rate" bson:"rate"`
}

// TourPackage is stored in tourPackages. TotalCost is what was paid out
// across the component costs.
type TourPackage struct {
	BaseRecord      `bson:",inline"`
	Destination     string  `json:"destination" bson:"destination"`
	StartDate       string  `json:"startDate" bson:"startDate"`
	EndDate         string  `json:"endDate" bson:"endDate"`
	FlightCost      float64 `json:"flightCost" bson:"flightCost"`
	CarCost         float64 `json:"carCost" bson:"carCost"`
	TourManagerCost float64 `json:"tourManagerCost" bson:"tourManagerCost"`
	TotalCost       float64 `json:"totalCost" bson:"totalCost"`
}

// TrainBooking is stored in trainBookings
type TrainBooking struct {
	BaseRecord `bson:",inline"`
	From       string `json:"from" bson:"from"`
	To         string `json:"to" bson:"to"`
	Date       string `json:"date" bson:"date"`
}

// Vajabhat is a miscellaneous payment, stored in vajabhats
type Vajabhat struct {
	BaseRecord `bson:",inline"`
	Amount     float64 `json:"amount" bson:"amount"`
	Date       string  `json:"date" bson:"date"`
}
