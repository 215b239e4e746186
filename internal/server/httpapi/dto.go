package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// registerRequest is the JSON body of POST /register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0)),
	)
}

// loginRequest is the form-encoded body of POST /login. The identifier field
// is called username on the wire, but carries the email.
type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// queryRequest is the JSON body of POST /query.
type queryRequest struct {
	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

func (r queryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CadastralNumber, validation.Required),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// tokenResponse is the success body of POST /login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
