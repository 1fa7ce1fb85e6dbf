package shared

// ServiceType categorizes what was booked. The same vocabulary is used for
// bookings and for the receipts issued against them.
type ServiceType string

const (
	ServiceTypeLodging    ServiceType = "lodging"
	ServiceTypeGastronomy ServiceType = "gastronomy"
	ServiceTypeTransport  ServiceType = "transport"
	ServiceTypeTour       ServiceType = "tour"
	ServiceTypePackage    ServiceType = "package"
)

// Valid reports whether t is one of the known service types
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeLodging, ServiceTypeGastronomy, ServiceTypeTransport, ServiceTypeTour, ServiceTypePackage:
		return true
	}
	return false
}
