package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationConfigurationValidate(t *testing.T) {
	require.NoError(t, (&ApplicationConfiguration{}).Validate())
	require.NoError(t, (&ApplicationConfiguration{LogLevel: "warn", LogEncoding: "json"}).Validate())
	require.Error(t, (&ApplicationConfiguration{LogLevel: "chatty"}).Validate())
	require.Error(t, (&ApplicationConfiguration{LogEncoding: "logfmt"}).Validate())
}
