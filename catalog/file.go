package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gatewayops/status-index/status"
)

var errEmptyCatalog = errors.New("catalog file contains no services")

// LoadFile reads service descriptors from a catalog file. The format is
// picked by extension: .yml and .yaml decode as YAML, everything else as
// JSON. The loaded catalog is validated before it is returned.
func LoadFile(path string) ([]status.Descriptor, error) {
	raw, err := os.ReadFile(path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read catalog file")
	}

	var services []status.Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(raw, &services)
	default:
		err = json.Unmarshal(raw, &services)
	}
	if nil != err {
		return nil, errors.Wrapf(err, "unable to decode catalog file %s", path)
	}

	if len(services) == 0 {
		return nil, errEmptyCatalog
	}
	if err := Validate(services); nil != err {
		return nil, err
	}

	log.Infof("Loaded %d services from %s", len(services), path)
	for _, s := range services {
		log.Infof("Service: %s, URL: %s, required: %v", s.Name, s.URL, s.Required)
	}

	return services, nil
}
