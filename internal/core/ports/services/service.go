package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and is
// what an admin/HTTP layer or the refresher binary would consume.
type ServiceContainer struct {
	Resolver   RateResolverSvcFacade
	Conversion ConversionSvcFacade
	TWRR       TWRRSvcFacade
	Providers  ProviderRegistrySvcFacade
}
