package docs_test

import (
	"encoding/json"
	"testing"

	"supplyhub/internal/adapters/in/http/docs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocument_IsValidOpenAPI(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var v2 openapi2.T
	require.NoError(t, json.Unmarshal([]byte(raw), &v2))

	v3, err := openapi2conv.ToV3(&v2)
	require.NoError(t, err)
	require.NoError(t, v3.Validate(t.Context()))

	for _, path := range []string{
		"/orders", "/orders/claimable", "/orders/{orderId}",
		"/orders/{orderId}/transitions", "/orders/{orderId}/claim",
		"/vendors/me/stats", "/me/profile", "/events",
	} {
		assert.NotNil(t, v3.Paths.Find(path), path)
	}
	assert.Equal(t, "supplyhub order API", v3.Info.Title)
}
