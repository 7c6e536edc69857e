package config

// MediatorConfig holds handler discovery settings
type MediatorConfig struct {
	// Handler scope: "package" (handlers must live beside their requests) or "global"
	Scope string `mapstructure:"scope" validate:"required,handler_scope"`

	// Reject a second handler for the same contract at registration time
	EagerAmbiguityCheck bool `mapstructure:"eager_ambiguity_check"`

	// Run Registry.Validate once all handlers are registered
	ValidateOnStartup bool `mapstructure:"validate_on_startup"`
}
