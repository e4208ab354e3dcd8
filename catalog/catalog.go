package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/gatewayops/status-index/status"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New()

// Validate checks every descriptor field and rejects duplicate service
// names. Gather cycles assume a catalog that passed this check.
func Validate(services []status.Descriptor) error {
	seen := make(map[string]struct{}, len(services))
	for _, s := range services {
		if err := validate.Struct(s); nil != err {
			return errors.Wrapf(err, "descriptor %q is invalid", s.Name)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("duplicate service name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	return nil
}

// Default returns the built-in catalog for a standalone gateway: the
// gateway's own liveness and readiness endpoints, both required.
func Default(gatewayURL string) []status.Descriptor {
	return []status.Descriptor{
		{Name: "gateway-liveness", URL: gatewayURL, Endpoint: "/health/liveliness", Required: true},
		{Name: "gateway-readiness", URL: gatewayURL, Endpoint: "/health/readiness", Required: true},
	}
}
