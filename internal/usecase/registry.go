package usecase

import (
	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"
)

// RegisterRecordServices registers one handler per record kind, in display order
func RegisterRecordServices(
	router ServiceRouter,
	store repository.DocumentStore,
	clock Clock,
	m *metrics.Metrics,
	logger logger.Logger,
) {
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.FlightBooking](entity.FlightBookingDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.HotelReservation](entity.HotelReservationDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.CarRental](entity.CarRentalDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.Visa](entity.VisaDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.ForeignExchange](entity.ForeignExchangeDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.TourPackage](entity.TourPackageDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.TrainBooking](entity.TrainBookingDescriptor, store, clock, m, logger)))
	router.Register(NewRecordHandlerAdapter(NewRecordService[entity.Vajabhat](entity.VajabhatDescriptor, store, clock, m, logger)))
}
