package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

var (
	embeddedOnce sync.Once
	embeddedDS   Dataset
	embeddedErr  error
)

// Embedded returns the dataset shipped with the binary. It is decoded once
// per process and treated as immutable afterwards.
func Embedded() (Dataset, error) {
	embeddedOnce.Do(func() {
		embeddedErr = json.Unmarshal(embeddedCatalog, &embeddedDS)
		if embeddedErr != nil {
			embeddedErr = fmt.Errorf("decode embedded catalog: %w", embeddedErr)
		}
	})
	return embeddedDS, embeddedErr
}
