package catalog

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	//all auth types are supported
	_ "k8s.io/client-go/plugin/pkg/client/auth"
	"k8s.io/client-go/rest"

	"github.com/gatewayops/status-index/status"
)

const (
	endpointAnnotation = "status-index/endpoint"
	requiredAnnotation = "status-index/required"

	domainPattern = "http://%s.%s.svc.cluster.local"
)

// Discover builds the catalog from the Kubernetes services matching the
// label selector in the given namespace. The probe endpoint and the
// required flag come from service annotations, with /health and optional
// as the defaults.
func Discover(ctx context.Context, namespace, selector string) ([]status.Descriptor, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	services, err := clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return nil, err
	}

	descriptors := mapServices(namespace, services.Items)
	if err := Validate(descriptors); nil != err {
		return nil, err
	}

	return descriptors, nil
}

func mapServices(namespace string, items []v1.Service) []status.Descriptor {
	descriptors := make([]status.Descriptor, 0, len(items))
	for _, srv := range items {
		log.Debugf("Descriptor found for service %s", srv.GetName())

		d := status.Descriptor{
			Name:     srv.GetName(),
			URL:      fmt.Sprintf(domainPattern, srv.GetName(), namespace),
			Endpoint: "/health",
		}
		if len(srv.Spec.Ports) > 0 {
			d.URL = fmt.Sprintf("%s:%d", d.URL, srv.Spec.Ports[0].Port)
		}

		if ep, ok := srv.GetAnnotations()[endpointAnnotation]; ok {
			d.Endpoint = ep
		}
		if raw, ok := srv.GetAnnotations()[requiredAnnotation]; ok {
			required, err := strconv.ParseBool(raw)
			if nil != err {
				log.Warnf("Ignoring bad %s annotation on %s: %v", requiredAnnotation, srv.GetName(), err)
			} else {
				d.Required = required
			}
		}

		descriptors = append(descriptors, d)
	}

	return descriptors
}
