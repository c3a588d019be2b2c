package config

type ServiceConfig struct {
	Name            string `yaml:"name"`
	Environment     string `yaml:"environment"`
	Version         string `yaml:"version"`
	ClientURL       string `yaml:"client_url"`
	StripeSecretKey string `yaml:"stripe_secret_key"`
	BookingAPIURL   string `yaml:"booking_api_url"`
	EmailsAPIURL    string `yaml:"emails_api_url"`
	JWTSecret       string `yaml:"jwt_secret"`
}
