package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSwagger(t *testing.T) {
	doc := string(NewSwagger().MustToJson())

	assert.Contains(t, doc, "/api/detectLiveness/singleModal/sessions")
	assert.Contains(t, doc, "/api/detectLivenessWithVerify/singleModal/sessions")
	assert.Contains(t, doc, "/api/sessions/{token}")
	assert.Contains(t, doc, "/ready")
	assert.Contains(t, doc, "Facelive Session Backend")
}
