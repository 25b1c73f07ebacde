// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── configBuilder ─────────────────────────────────────────────────────────────

func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Kind)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{TokenIssuer: "issuer"}, Storage: Storage{Kind: StorageTOML}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, StorageTOML, cfg.Storage.Kind)
	assert.Equal(t, "config", cfg.Storage.Files.ConfigDir, "zero fields keep earlier values")
}

func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{Kind: StoragePostgres}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestWithFlags_InvalidFlagRecordsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown-flag"})
	require.Error(t, b.err)

	_, err := b.build()
	assert.Error(t, err)
}

func TestWithJSON_UsesPathFromEarlierSource(t *testing.T) {
	p := writeJSONConfig(t, `{"app": {"version": "9.9.9"}}`)

	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", cfg.App.Version)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "nope.json")})

	b.withJSON()
	assert.Error(t, b.err)
}

// ── env ───────────────────────────────────────────────────────────────────────

func TestParseEnv_AllFields(t *testing.T) {
	t.Setenv("CONFIG", "/path/to/config.json")
	t.Setenv("APP_TOKEN_SIGN_KEY", "jwt_secret")
	t.Setenv("APP_TOKEN_ISSUER", "test_issuer")
	t.Setenv("APP_TOKEN_DURATION", "2h")
	t.Setenv("APP_HASH_KEY", "hash")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("STORAGE_KIND", "sqlite")
	t.Setenv("STORAGE_DB_DATABASE_URI", "file:config.db")
	t.Setenv("STORAGE_FILES_CONFIG_DIR", "/etc/mods")
	t.Setenv("SERVER_ADDRESS", "localhost:9000")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("ADAPTER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "3s")
	t.Setenv("WORKERS_RELOAD_INTERVAL", "15s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "hash", cfg.App.HashKey)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, StorageSQLite, cfg.Storage.Kind)
	assert.Equal(t, "file:config.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/mods", cfg.Storage.Files.ConfigDir)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Workers.ReloadInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WORKERS_RELOAD_INTERVAL", "soon")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

// ── flags ─────────────────────────────────────────────────────────────────────

func TestParseFlags_AllFields(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:8081",
		"-server", "127.0.0.1:8081",
		"-storage", "toml",
		"-config-dir", "/tmp/mods",
		"-d", "postgres://localhost/db",
		"-c", "cfg.json",
		"-token-sign-key", "key",
		"-token-issuer", "iss",
		"-token-duration", "30m",
		"-request-timeout", "2s",
		"-hash-key", "h",
		"-reload-interval", "1m",
		"-log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:8081", cfg.Adapter.HTTPAddress)
	assert.Equal(t, StorageTOML, cfg.Storage.Kind)
	assert.Equal(t, "/tmp/mods", cfg.Storage.Files.ConfigDir)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "key", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, 30*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "h", cfg.App.HashKey)
	assert.Equal(t, time.Minute, cfg.Workers.ReloadInterval)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Server.HTTPAddress)
	assert.Equal(t, "", cfg.Storage.Kind)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "not-an-address"})
	assert.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ip", input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "any host", input: ":8080", want: NetAddress{Port: 8080}},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non numeric port", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad ip", input: "300.1.1.1:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
	assert.Equal(t, ":8080", (&NetAddress{Port: 8080}).String())
}

// ── json ──────────────────────────────────────────────────────────────────────

func TestParseJSON_Success(t *testing.T) {
	p := writeJSONConfig(t, `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_issuer": "iss",
			"token_duration": "1h",
			"hash_key": "hash",
			"version": "1.2.3",
			"log_level": "info"
		},
		"storage": {
			"kind": "sqlite",
			"db": {"dsn": "mods.db"},
			"files": {"config_dir": "/etc/mods"}
		},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"adapter": {"http_address": "localhost:8080", "request_timeout": "5s"},
		"workers": {"reload_interval": "10s"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, StorageSQLite, cfg.Storage.Kind)
	assert.Equal(t, "mods.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/mods", cfg.Storage.Files.ConfigDir)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Workers.ReloadInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := writeJSONConfig(t, `{"app": `)

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := writeJSONConfig(t, `{"workers": {"reload_interval": true}}`)

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_NumericNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, Duration(time.Second), d)

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1s"`, string(out))
}

// ── validation ────────────────────────────────────────────────────────────────

func TestStorageValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage Storage
		wantErr bool
	}{
		{name: "memory", storage: Storage{Kind: StorageMemory}},
		{name: "toml", storage: Storage{Kind: StorageTOML, Files: Files{ConfigDir: "d"}}},
		{name: "toml without dir", storage: Storage{Kind: StorageTOML}, wantErr: true},
		{name: "sqlite", storage: Storage{Kind: StorageSQLite, DB: DB{DSN: "x.db"}}},
		{name: "postgres without dsn", storage: Storage{Kind: StoragePostgres}, wantErr: true},
		{name: "unknown", storage: Storage{Kind: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.storage.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg := defaultConfig()
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidAppConfigs)

	cfg.App.TokenSignKey = "secret"
	assert.NoError(t, cfg.validateServer())
}

func TestClientConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.HashKey = "hash"
	cfg.Workers.ReloadInterval = time.Second

	clientCfg := newClientConfig(cfg)
	require.NoError(t, clientCfg.validate())
	assert.Equal(t, "hash", clientCfg.App.HashKey)
	assert.Equal(t, time.Second, clientCfg.Workers.ReloadInterval)
	assert.Equal(t, "localhost:8080", clientCfg.Adapter.HTTPAddress)

	clientCfg.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, clientCfg.validate(), ErrInvalidAdapterConfigs)
}
