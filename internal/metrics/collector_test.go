package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCollectorNoop(t *testing.T) {
	c := NewCollector("noop", nil)
	_, ok := c.(*NoopCollector)
	assert.True(t, ok)
}

func TestNewCollectorDefaultsToNoop(t *testing.T) {
	c := NewCollector("unknown", nil)
	_, ok := c.(*NoopCollector)
	assert.True(t, ok)
}

func TestNoopCollectorMethodsDoNotPanic(t *testing.T) {
	c := &NoopCollector{}
	assert.NotPanics(t, func() {
		c.RecordRequest("GET", "/v1/sdf-to-matter", 200, time.Millisecond)
		c.RecordConversion("sdf_to_matter", true, time.Millisecond)
		c.RecordUnresolvedConformance("feature")
		c.RecordSchemaValidation("sdf_model", false, time.Millisecond)
	})
}
