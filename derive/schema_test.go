// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/strata/derive"
	"github.com/nil-go/strata/schema"
)

func TestPartial_BuildSchema(t *testing.T) {
	t.Parallel()

	built := schema.For[derive.Partial[ServerConfig]]()
	assert.Equal(t, "PartialServerConfig", built.Name)

	structure, ok := built.Type.(*schema.StructType)
	require.True(t, ok)
	assert.True(t, structure.Partial)

	fields := make(map[string]*schema.Field, len(structure.Fields))
	for _, field := range structure.Fields {
		fields[field.Name] = field
	}
	assert.False(t, fields["token"].Optional)
	assert.Equal(t, "PartialLogConfig", fields["log"].Schema.Name)
	assert.True(t, fields["log"].Schema.Type.(*schema.StructType).Partial) //nolint:forcetypeassert

	tls, ok := fields["tls"].Schema.Type.(*schema.UnionType)
	require.True(t, ok)
	assert.True(t, tls.Partial)
	assert.True(t, tls.HasNull())
	assert.Equal(t, "PartialTLSConfig", tls.Variants[0].Name)

	routes, ok := fields["routes"].Schema.Type.(*schema.ArrayType)
	require.True(t, ok)
	assert.Equal(t, "PartialRouteConfig", routes.Items.Name)

	backends, ok := fields["backends"].Schema.Type.(*schema.ObjectType)
	require.True(t, ok)
	assert.Equal(t, "PartialBackendConfig", backends.Value.Name)
}

func TestPartial_SchemaName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PartialServerConfig", derive.Partial[ServerConfig]{}.SchemaName())
	assert.Equal(t, "ServerConfig", derive.Config[ServerConfig]{}.ConfigName())
}

func TestPartial_schemaDoesNotChangeFinal(t *testing.T) {
	t.Parallel()

	_ = schema.For[derive.Partial[ServerConfig]]()
	final := schema.For[ServerConfig]()
	assert.Equal(t, "ServerConfig", final.Name)
	assert.False(t, final.Type.(*schema.StructType).Partial) //nolint:forcetypeassert
}
