package validation

type LoginForm struct {
	WhatsAppNumber string `json:"whatsapp_number" validate:"required,whatsapp"`
	Password       string `json:"password"        validate:"required,min=6"`
}

type RegisterForm struct {
	Name                 string `json:"name"                  validate:"required,min=2"`
	WhatsAppNumber       string `json:"whatsapp_number"       validate:"required,whatsapp"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,min=6,eqfield=Password"`
}

type BookingForm struct {
	ServiceID   int64  `json:"service_id"   validate:"gt=0"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02,notpast"`
	BookingTime string `json:"booking_time" validate:"required,clock"`
	Notes       string `json:"notes"        validate:"max=1000"`
}

type PetForm struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
}

type ProductForm struct {
	PetID        int64   `json:"pet_id"        validate:"gt=0"`
	Name         string  `json:"name"          validate:"required,max=255"`
	Description  string  `json:"description"   validate:"required"`
	Price        float64 `json:"price"         validate:"gt=0"`
	ShopeeURL    string  `json:"shopee_url"    validate:"omitempty,url"`
	TokopediaURL string  `json:"tokopedia_url" validate:"omitempty,url"`
	LazadaURL    string  `json:"lazada_url"    validate:"omitempty,url"`
}

type ServiceForm struct {
	PetID       int64   `json:"pet_id"      validate:"gt=0"`
	Name        string  `json:"name"        validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"gt=0"`
}

type SliderForm struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	LinkURL     string `json:"link_url"    validate:"omitempty,url"`
	Order       int    `json:"order"       validate:"gte=0"`
}

type BookingStatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
