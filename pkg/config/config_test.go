package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Store.SeedDemo)
	assert.Equal(t, 7, cfg.CRM.FollowUpDays)
	assert.Equal(t, "SLI-Q", cfg.CRM.QuotationPrefix)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "SRI LAKSHMI INDUSTRIES", cfg.Company.Name)
	assert.Equal(t, []string{
		"Goods once sold will not be taken back.",
		"Please inform of any discrepancy within five days.",
	}, cfg.Company.Terms)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Postgres")
	v.Set("CRM_FOLLOW_UP_DAYS", "10")
	v.Set("DB_PASSWORD", "p@ss word")
	v.Set("HTTP_PORT", 9000)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 10, cfg.CRM.FollowUpDays)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%20word")
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "redis")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("CRM_FOLLOW_UP_DAYS", "0")
	_, err = config.FromViper(v)
	assert.Error(t, err)
}
