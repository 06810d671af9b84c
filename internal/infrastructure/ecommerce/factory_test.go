package ecommerce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/marketops/backoffice/internal/domain/inventory"
	"github.com/marketops/backoffice/internal/infrastructure/config"
)

func TestNewRecordSource(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{config.ProviderSellerDynamics, "sellerdynamics"},
		{config.ProviderShopify, "shopify"},
		{config.ProviderMock, "mock"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			source, err := NewRecordSource(config.UpstreamConfig{Provider: tt.provider}, zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, source.Name())
		})
	}
}

func TestNewRecordSource_UnknownProvider(t *testing.T) {
	_, err := NewRecordSource(config.UpstreamConfig{Provider: "soap"}, nil)
	assert.ErrorIs(t, err, inventory.ErrUnknownProvider)
}

func TestNewRecordSource_PassesSettings(t *testing.T) {
	source, err := NewRecordSource(config.UpstreamConfig{
		Provider:       config.ProviderSellerDynamics,
		TimeoutSeconds: 5,
		PageSize:       100,
		SellerDynamics: config.SellerDynamicsConfig{
			Endpoint:       "https://sd.example.com",
			EncryptedLogin: "login",
			RetailerID:     "r-1",
		},
	}, nil)
	require.NoError(t, err)

	sd, ok := source.(*SellerDynamicsSource)
	require.True(t, ok)
	assert.Equal(t, 100, sd.config.PageSize)
	assert.Equal(t, "5s", sd.httpClient.Timeout.String())
	assert.NoError(t, sd.Validate())
}

func TestMockSource(t *testing.T) {
	source := NewMockSource()
	require.NoError(t, source.Validate())

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	records[0]["SKU"] = "mutated"
	again, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "WIDGET-001", again[0]["SKU"])

	items := inventory.NormalizeAll(again)
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		assert.NotEmpty(t, item.SKU)
		assert.False(t, seen[item.SKU], "duplicate SKU %s", item.SKU)
		seen[item.SKU] = true
	}
}

func TestMockSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSource().FetchRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
