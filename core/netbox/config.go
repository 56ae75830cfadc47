package netbox

// Config holds configuration for the NetBox API connection.
type Config struct {
	// URL is the base URL of the NetBox instance (without /api).
	URL string `mapstructure:"url" default:"http://localhost:8000"`
	// Token is the API token. It takes priority over Username/Password.
	Token string `mapstructure:"token" default:""`
	// Username is used with Password to provision a temporary token.
	Username string `mapstructure:"username" default:""`
	// Password is used with Username to provision a temporary token.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
}

// HasToken reports whether a static API token is configured.
func (c Config) HasToken() bool {
	return c.Token != ""
}

// HasCredentials reports whether a username and password are configured.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
