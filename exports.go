package certpay

import "github.com/xraph/certpay/types"

// Re-export common types for convenience so users don't have to import types package.

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Entity constructor and rounding helper.
var (
	NewEntity = types.NewEntity
	Round2    = types.Round2
)
