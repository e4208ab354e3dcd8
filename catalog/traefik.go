package catalog

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/gatewayops/status-index/status"
)

const traefikServicesURL = "/api/http/services"

var errTraefikStatus = errors.New("unable to list traefik services")

// traefikService is the slice of the traefik v2 API response this catalog
// source cares about.
type traefikService struct {
	Name         string               `json:"name,omitempty"`
	LoadBalancer *traefikLoadBalancer `json:"loadBalancer,omitempty"`
}

type traefikLoadBalancer struct {
	Servers     []traefikServer     `json:"servers,omitempty"`
	HealthCheck *traefikHealthCheck `json:"healthCheck,omitempty"`
}

type traefikServer struct {
	URL string `json:"url"`
}

type traefikHealthCheck struct {
	Path string `json:"path,omitempty"`
}

// DiscoverTraefik builds the catalog from the HTTP services a traefik v2
// instance is routing to. Services keep the health-check path configured
// on their load balancer, falling back to /health. Discovered services
// are optional; mark required ones through a catalog file instead.
func DiscoverTraefik(traefikURL string, timeout time.Duration) ([]status.Descriptor, error) {
	r := resty.NewWithClient(&http.Client{
		Timeout: timeout,
	})

	var serviceInfo []*traefikService
	rs, err := r.R().SetResult(&serviceInfo).Get(traefikURL + traefikServicesURL)
	if nil != err {
		return nil, errors.Wrap(err, "unable to GET traefik services info")
	}
	if rs.StatusCode() != http.StatusOK {
		return nil, errTraefikStatus
	}

	descriptors := make([]status.Descriptor, 0, len(serviceInfo))
	for _, b := range serviceInfo {
		if nil == b.LoadBalancer || len(b.LoadBalancer.Servers) == 0 {
			continue
		}

		name := b.Name
		if i := strings.LastIndex(name, "@"); i > 0 {
			name = name[:i]
		}

		d := status.Descriptor{
			Name:     name,
			URL:      b.LoadBalancer.Servers[0].URL,
			Endpoint: "/health",
		}
		if nil != b.LoadBalancer.HealthCheck && b.LoadBalancer.HealthCheck.Path != "" {
			d.Endpoint = b.LoadBalancer.HealthCheck.Path
		}

		descriptors = append(descriptors, d)
	}

	if err := Validate(descriptors); nil != err {
		return nil, err
	}

	return descriptors, nil
}
