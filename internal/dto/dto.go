package dto

import "encoding/json"

type CreateOrderRequest struct {
	PackageName   string `json:"packageName"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

type CaptureOrderRequest struct {
	OrderID       uint   `json:"orderId"`
	PaypalOrderID string `json:"paypalOrderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateOrderCustomerRequest struct {
	CustomerName  *string `json:"customerName"`
	CustomerEmail *string `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone"`
}

type UpdateIntakeStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

type SaveDraftRequest struct {
	Email               string          `json:"email"`
	PaypalTransactionID string          `json:"paypalTransactionId"`
	FormData            json.RawMessage `json:"formData"`
}

type SaveDraftResponse struct {
	ResumeToken string `json:"resumeToken"`
}

type ResumeLaterRequest struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	FormData json.RawMessage `json:"formData"`
}

type CompleteDraftRequest struct {
	Email string `json:"email"`
}

type ValidatePromoRequest struct {
	Code        string `json:"code"`
	OrderAmount string `json:"orderAmount"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status"`
}

type TestEmailRequest struct {
	Recipient string `json:"recipient"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
