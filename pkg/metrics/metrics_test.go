package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistryIsDefaultRegisterer(t *testing.T) {
	if Registry == nil {
		t.Fatal("Registry is nil")
	}
	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry is not the default Prometheus registerer")
	}
}
