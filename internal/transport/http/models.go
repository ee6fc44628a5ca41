package http

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone,omitempty"`
}

// LoginRequest carries the login fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries profile fields plus the optional password
// change pair.
type UpdateProfileRequest struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty"`
}

// ForgotPasswordRequest carries the email for a reset-link request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the single-use token and the new password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ReferralRequest is a travel-agency partnership enquiry.
type ReferralRequest struct {
	Name       string `json:"name"`
	AgencyName string `json:"agencyName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}
