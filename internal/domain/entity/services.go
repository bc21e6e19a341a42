// internal/domain/entity/services.go
package entity

// Collection names are the persisted storage namespace and must not change.
const (
	CollectionFlightBookings    = "flightBookings"
	CollectionHotelReservations = "hotelReservations"
	CollectionCarRentals        = "carRentals"
	CollectionVisas             = "visas"
	CollectionForeignExchanges  = "foreignExchanges"
	CollectionTourPackages      = "tourPackages"
	CollectionTrainBookings     = "trainBookings"
	CollectionVajabhats         = "vajabhats"
)

var (
	quoteField = FieldDef{Name: FieldCustomerQuote, Label: "Customer Quote (₹)", Type: FieldNumber, Required: true}
	costField  = FieldDef{Name: FieldSupplierCost, Label: "Supplier Cost (₹)", Type: FieldNumber, Required: true}

	quoteColumn  = Column{Key: FieldCustomerQuote, Header: "Customer Quote"}
	costColumn   = Column{Key: FieldSupplierCost, Header: "Supplier Cost"}
	profitColumn = Column{Key: "profit", Header: "Profit"}
)

var FlightBookingDescriptor = Descriptor{
	Collection:  CollectionFlightBookings,
	DisplayName: "Flight Bookings",
	Slug:        "flight-booking",
	Title:       "Flight Booking",
	Description: "Manage flight bookings with complete financial tracking",
	Fields: []FieldDef{
		{Name: "from", Label: "From", Type: FieldText, Required: true},
		{Name: "to", Label: "To", Type: FieldText, Required: true},
		{Name: "flightDate", Label: "Flight Date", Type: FieldDate, Required: true},
		{Name: "sector", Label: "Booking Sector", Type: FieldText, Placeholder: "e.g., Indigo, MMT"},
		quoteField,
		costField,
		{Name: "tourManagerCost", Label: "Tour Manager Cost (₹)", Type: FieldNumber},
		{Name: "carCost", Label: "Car Cost (₹)", Type: FieldNumber},
	},
	Columns: []Column{
		{Key: "from", Header: "From"},
		{Key: "to", Header: "To"},
		{Key: "flightDate", Header: "Flight Date"},
		quoteColumn, costColumn, profitColumn,
	},
}

var HotelReservationDescriptor = Descriptor{
	Collection:  CollectionHotelReservations,
	DisplayName: "Hotel Reservations",
	Slug:        "hotel-reservation",
	Title:       "Hotel Reservation",
	Description: "Track hotel bookings and associated costs",
	Fields: []FieldDef{
		{Name: "hotelName", Label: "Hotel Name / Country", Type: FieldText, Required: true},
		{Name: "checkInDate", Label: "Check-in Date", Type: FieldDate, Required: true},
		{Name: "checkOutDate", Label: "Check-out Date", Type: FieldDate, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "hotelName", Header: "Hotel Name / Country"},
		{Key: "checkInDate", Header: "Check-in Date"},
		{Key: "checkOutDate", Header: "Check-out Date"},
		quoteColumn, costColumn, profitColumn,
	},
}

var CarRentalDescriptor = Descriptor{
	Collection:  CollectionCarRentals,
	DisplayName: "Car Rentals",
	Slug:        "car-rental",
	Title:       "Car Rental",
	Description: "Manage car rentals with size and pricing details",
	Fields: []FieldDef{
		{Name: "destination", Label: "Destination", Type: FieldText, Required: true},
		{Name: "date", Label: "Date", Type: FieldDate, Required: true},
		{Name: "seaters", Label: "Number of Seats", Type: FieldNumber, Required: true, Integer: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "destination", Header: "Destination"},
		{Key: "date", Header: "Date"},
		{Key: "seaters", Header: "Seats"},
		quoteColumn, costColumn, profitColumn,
	},
}

var VisaDescriptor = Descriptor{
	Collection:  CollectionVisas,
	DisplayName: "Visa Services",
	Slug:        "visa",
	Title:       "Visa",
	Description: "Process and track visa applications",
	Fields: []FieldDef{
		{Name: "country", Label: "Country", Type: FieldText, Required: true},
		{Name: "applicationDate", Label: "Application Date", Type: FieldDate, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "country", Header: "Country"},
		{Key: "applicationDate", Header: "Application Date"},
		quoteColumn, costColumn, profitColumn,
	},
}

var ForeignExchangeDescriptor = Descriptor{
	Collection:  CollectionForeignExchanges,
	DisplayName: "Foreign Exchange",
	Slug:        "foreign-exchange",
	Title:       "Foreign Exchange",
	Description: "Record currency exchange transactions",
	Fields: []FieldDef{
		{Name: "currency", Label: "Currency", Type: FieldText, Required: true},
		{Name: "rate", Label: "Exchange Rate", Type: FieldNumber, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "currency", Header: "Currency"},
		{Key: "rate", Header: "Rate"},
		quoteColumn, costColumn, profitColumn,
	},
}

var TourPackageDescriptor = Descriptor{
	Collection:  CollectionTourPackages,
	DisplayName: "Tour Packages",
	Slug:        "tour-packages",
	Title:       "Tour Package",
	Description: "Manage tour packages with a full cost breakdown",
	Fields: []FieldDef{
		{Name: "destination", Label: "Destination", Type: FieldText, Required: true},
		{Name: "startDate", Label: "Start Date", Type: FieldDate, Required: true},
		{Name: "endDate", Label: "End Date", Type: FieldDate, Required: true},
		{Name: "flightCost", Label: "Flight Cost (₹)", Type: FieldNumber},
		{Name: "carCost", Label: "Car Cost (₹)", Type: FieldNumber},
		{Name: "tourManagerCost", Label: "Tour Manager Cost (₹)", Type: FieldNumber},
		{Name: "totalCost", Label: "Total Cost Paid (₹)", Type: FieldNumber, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "destination", Header: "Destination"},
		{Key: "startDate", Header: "Start Date"},
		{Key: "endDate", Header: "End Date"},
		quoteColumn,
		{Key: "totalCost", Header: "Total Cost"},
		profitColumn,
	},
}

var TrainBookingDescriptor = Descriptor{
	Collection:  CollectionTrainBookings,
	DisplayName: "Train Bookings",
	Slug:        "train-booking",
	Title:       "Train Booking",
	Description: "Track train tickets and reservations",
	Fields: []FieldDef{
		{Name: "from", Label: "From", Type: FieldText, Required: true},
		{Name: "to", Label: "To", Type: FieldText, Required: true},
		{Name: "date", Label: "Date", Type: FieldDate, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "from", Header: "From"},
		{Key: "to", Header: "To"},
		{Key: "date", Header: "Date"},
		quoteColumn, costColumn, profitColumn,
	},
}

var VajabhatDescriptor = Descriptor{
	Collection:  CollectionVajabhats,
	DisplayName: "Vajabhat",
	Slug:        "vajabhat",
	Title:       "Vajabhat",
	Description: "Record miscellaneous payments",
	Fields: []FieldDef{
		{Name: "amount", Label: "Amount Paid (₹)", Type: FieldNumber, Required: true},
		{Name: "date", Label: "Date", Type: FieldDate, Required: true},
		quoteField,
		costField,
	},
	Columns: []Column{
		{Key: "amount", Header: "Amount"},
		{Key: "date", Header: "Date"},
		quoteColumn, costColumn, profitColumn,
	},
}

// Descriptors lists every record kind in display order
func Descriptors() []Descriptor {
	return []Descriptor{
		FlightBookingDescriptor,
		HotelReservationDescriptor,
		CarRentalDescriptor,
		VisaDescriptor,
		ForeignExchangeDescriptor,
		TourPackageDescriptor,
		TrainBookingDescriptor,
		VajabhatDescriptor,
	}
}
