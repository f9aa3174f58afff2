// Package data holds the product snapshot compiled into the binary.
package data

import _ "embed"

// Products is the default contents of the product store.
//
//go:embed products.json
var Products []byte
