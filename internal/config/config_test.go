package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/delorenj/imi/internal/config"
)

func TestMonitoringSettings_RefreshInterval(t *testing.T) {
	m := config.MonitoringSettings{RefreshIntervalMS: 30000}
	assert.Equal(t, 30*time.Second, m.RefreshInterval())
}

func TestMonitoringSettings_RefreshInterval_Zero(t *testing.T) {
	m := config.MonitoringSettings{}
	assert.Equal(t, time.Duration(0), m.RefreshInterval())
}
