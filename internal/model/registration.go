package model

import "time"

// RegistrationStatus 報名狀態類型
type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// Registration 報名紀錄型別；報名流程目前只累加活動的 registered，不會建立此紀錄
type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"eventId"`
	UserID       string             `json:"userId"`
	RegisteredAt time.Time          `json:"registeredAt"`
	Status       RegistrationStatus `json:"status"`
}

// RegistrationForm 報名表單，不做任何欄位驗證也不保存
type RegistrationForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Dietary       string `json:"dietary"`
	Accessibility string `json:"accessibility"`
	CardNumber    string `json:"cardNumber"`
	ExpiryDate    string `json:"expiryDate"`
	CVV           string `json:"cvv"`
	NameOnCard    string `json:"nameOnCard"`
}

// RegistrationConfirmation 送往確認信佇列的訊息，不含付款資料
type RegistrationConfirmation struct {
	RequestID     string    `json:"request_id"`
	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	RequestedAt   time.Time `json:"requested_at"`
}

const RegistrationSuccessMessage = "Registration successful! You will receive a confirmation email shortly."

// RegistrationResult 報名結果
type RegistrationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Event   *Event `json:"event"`
}
