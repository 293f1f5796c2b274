package certpay

import "github.com/xraph/certpay/id"

// ID is the primary identifier type for all CertPay entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
