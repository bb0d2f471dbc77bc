package factory

import (
	"fmt"
	"strings"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// Validate checks that every enumerated provider type has a strategy. A
// failure means the registry and the enumeration have drifted out of sync.
func (r *Registry) Validate() error {
	var missing []string
	for _, providerType := range types.AllProviderTypes() {
		if _, ok := r.factories[providerType]; !ok {
			missing = append(missing, string(providerType))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("registry incomplete, no factory for: %s", strings.Join(missing, ", "))
	}
	return nil
}
