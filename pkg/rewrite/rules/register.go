package rules

import "github.com/yaklabco/sidconv/pkg/rewrite"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *rewrite.Registry) {
	// Statement rules
	registry.Register(NewBaseAddressRule()) // SC001
	registry.Register(NewSIDPokeRule())     // SC002
	registry.Register(NewDelayScaleRule())  // SC003
	registry.Register(NewGetInkeyRule())    // SC004

	// Expression rules
	registry.Register(NewScreenMapRule())    // SC010
	registry.Register(NewPETSCIIStripRule()) // SC011
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(rewrite.DefaultRegistry)
}
