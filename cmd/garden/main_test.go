package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"absent", []string{"stats"}, ""},
		{"before subcommand", []string{"--config", "g.yaml", "stats"}, "g.yaml"},
		{"after subcommand flags", []string{"plant", "--slot", "A1", "--config=other.yaml"}, "other.yaml"},
		{"help flag ignored", []string{"--help"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configPath(tt.args))
		})
	}
}
