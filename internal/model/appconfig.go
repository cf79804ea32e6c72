package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to cutting plans
	DefaultMinimumUsableLength float64 `json:"default_minimum_usable_length"`
	DefaultMinimumUsableWeight float64 `json:"default_minimum_usable_weight"`
	DefaultOperator            string  `json:"default_operator"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"` // "debug", "info", "warn", "error"

	// Reports
	CompanyName string   `json:"company_name"`
	RecentFiles []string `json:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMinimumUsableLength: defaults.MinimumUsableLength,
		DefaultMinimumUsableWeight: defaults.MinimumUsableWeight,
		DefaultOperator:            defaults.Operator,
		LogFile:                    "",
		LogLevel:                   "info",
		CompanyName:                "",
		RecentFiles:                []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
// Zero values are left alone so a partially written config keeps built-in defaults.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	if c.DefaultMinimumUsableLength > 0 {
		s.MinimumUsableLength = c.DefaultMinimumUsableLength
	}
	if c.DefaultMinimumUsableWeight > 0 {
		s.MinimumUsableWeight = c.DefaultMinimumUsableWeight
	}
	if c.DefaultOperator != "" {
		s.Operator = c.DefaultOperator
	}
}
