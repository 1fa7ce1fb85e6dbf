package handler

// CreateBookingRequest represents a request to create a new booking
type CreateBookingRequest struct {
	UserID          string  `json:"user_id" binding:"required"`
	ServiceType     string  `json:"service_type" binding:"required,oneof=lodging gastronomy transport tour package"`
	DestinationID   string  `json:"destination_id,omitempty"`
	DestinationName string  `json:"destination_name" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	Adults          int     `json:"adults" binding:"required,min=1"`
	Children        int     `json:"children" binding:"min=0"`
	UnitPrice       float64 `json:"unit_price" binding:"min=0"`
	FullName        string  `json:"full_name" binding:"required"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Phone           string  `json:"phone,omitempty"`
	Document        string  `json:"document,omitempty"`
	SpecialRequests string  `json:"special_requests,omitempty"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	ServiceType      string  `json:"service_type"`
	DestinationID    string  `json:"destination_id,omitempty"`
	DestinationName  string  `json:"destination_name"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Adults           int     `json:"adults"`
	Children         int     `json:"children"`
	UnitPrice        float64 `json:"unit_price"`
	TotalPrice       float64 `json:"total_price"`
	Status           string  `json:"status"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	Document         string  `json:"document,omitempty"`
	SpecialRequests  string  `json:"special_requests,omitempty"`
	ConfirmationCode string  `json:"confirmation_code"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// CreateReceiptRequest represents a request to issue a receipt from explicit
// input. TaxAmount is optional; when omitted the default rate applies.
type CreateReceiptRequest struct {
	BookingID          string   `json:"booking_id" binding:"omitempty,uuid"`
	UserID             string   `json:"user_id" binding:"required"`
	ServiceType        string   `json:"service_type" binding:"required,oneof=lodging gastronomy transport tour package"`
	ProviderID         string   `json:"provider_id,omitempty"`
	ProviderName       string   `json:"provider_name,omitempty"`
	ClientName         string   `json:"client_name" binding:"required"`
	ClientEmail        string   `json:"client_email" binding:"omitempty,email"`
	ClientDocument     string   `json:"client_document" binding:"required"`
	ClientPhone        string   `json:"client_phone,omitempty"`
	ServiceDescription string   `json:"service_description" binding:"max=500"`
	ServiceStartDate   string   `json:"service_start_date" binding:"required"`
	ServiceEndDate     string   `json:"service_end_date,omitempty"`
	PersonCount        int      `json:"person_count" binding:"min=0"`
	Subtotal           float64  `json:"subtotal" binding:"min=0"`
	TaxAmount          *float64 `json:"tax_amount,omitempty"`
	Discount           float64  `json:"discount" binding:"min=0"`
	PaymentMethod      string   `json:"payment_method,omitempty"`
}

// IssueReceiptForBookingRequest carries the receipt fields not derivable from
// the booking itself
type IssueReceiptForBookingRequest struct {
	ProviderID         string   `json:"provider_id,omitempty"`
	ProviderName       string   `json:"provider_name,omitempty"`
	ServiceDescription string   `json:"service_description" binding:"max=500"`
	TaxAmount          *float64 `json:"tax_amount,omitempty"`
	Discount           float64  `json:"discount" binding:"min=0"`
	PaymentMethod      string   `json:"payment_method,omitempty"`
}

// MarkVerifiedRequest represents a request to mark a receipt verified
type MarkVerifiedRequest struct {
	VerifiedBy string `json:"verified_by" binding:"required"`
	Notes      string `json:"notes,omitempty"`
}

// RejectReceiptRequest represents a request to reject a receipt
type RejectReceiptRequest struct {
	VerifiedBy string `json:"verified_by" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID                 string  `json:"id"`
	ReceiptCode        string  `json:"receipt_code"`
	VerificationCode   string  `json:"verification_code"`
	BookingID          string  `json:"booking_id,omitempty"`
	UserID             string  `json:"user_id"`
	ServiceType        string  `json:"service_type"`
	ProviderID         string  `json:"provider_id,omitempty"`
	ProviderName       string  `json:"provider_name,omitempty"`
	ClientName         string  `json:"client_name"`
	ClientEmail        string  `json:"client_email,omitempty"`
	ClientDocument     string  `json:"client_document"`
	ClientPhone        string  `json:"client_phone,omitempty"`
	ServiceDescription string  `json:"service_description,omitempty"`
	ServiceStartDate   string  `json:"service_start_date"`
	ServiceEndDate     string  `json:"service_end_date,omitempty"`
	PersonCount        int     `json:"person_count"`
	Subtotal           float64 `json:"subtotal"`
	TaxAmount          float64 `json:"tax_amount"`
	Discount           float64 `json:"discount"`
	Total              float64 `json:"total"`
	Status             string  `json:"status"`
	PaymentMethod      string  `json:"payment_method,omitempty"`
	PaidAt             string  `json:"paid_at,omitempty"`
	VerifiedBy         string  `json:"verified_by,omitempty"`
	VerifiedAt         string  `json:"verified_at,omitempty"`
	VerificationNotes  string  `json:"verification_notes,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// VerificationResponse represents the outcome of a public verification check
type VerificationResponse struct {
	Valid   bool             `json:"valid"`
	Message string           `json:"message"`
	Receipt *ReceiptResponse `json:"receipt,omitempty"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
