// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaService_Describe(t *testing.T) {
	ctx := context.Background()
	side := newExampleSide(t, 1)
	side.set(t, "world.maxPlayers", modconfig.IntValue(12))

	svc := service.NewSchemaService(side.registry)

	all := svc.Describe(ctx)
	require.Len(t, all, 1)

	got, err := svc.DescribeModule(ctx, "example")
	require.NoError(t, err)
	assert.Equal(t, all[0], got)

	assert.Equal(t, "example", got.ID)
	assert.Equal(t, "common", got.Type)
	assert.True(t, got.Syncable)
	assert.Equal(t, syncproto.Fingerprint(side.module), got.Fingerprint)
	assert.Equal(t, map[string]string{"world": "world settings"}, got.Categories)

	require.Len(t, got.Entries, 4)
	assert.Equal(t, models.EntrySchema{
		Path:     "world.maxPlayers",
		Kind:     "int",
		Comment:  "player cap",
		Default:  "10",
		Current:  "12",
		Min:      "1",
		Max:      "50",
		Syncable: true,
	}, got.Entries[0])
	assert.Equal(t, []string{"EASY", "NORMAL", "HARD"}, got.Entries[1].Domain)
	assert.Equal(t, "NORMAL", got.Entries[1].Current)
	assert.True(t, got.Entries[2].RequiresRestart)
	assert.False(t, got.Entries[2].Syncable)
	assert.Empty(t, got.Entries[2].Min)

	_, err = svc.DescribeModule(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrUnknownConfig)
}

func TestNewAppInfoService(t *testing.T) {
	svc, err := service.NewAppInfoService(config.App{Version: "2.5.1"}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "2.5.1", svc.GetAppVersion(context.Background()))

	svc, err = service.NewAppInfoService(config.App{}, logger.Nop())
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, service.ErrVersionIsNotSpecified)
}

func TestNewServices(t *testing.T) {
	side := newExampleSide(t, 1)

	services, err := service.NewServices(side.registry, testAppConfig, nil, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, services.SessionService)
	assert.NotNil(t, services.SchemaService)
	assert.Equal(t, "1.0.0", services.AppInfoService.GetAppVersion(context.Background()))

	_, err = service.NewServices(side.registry, config.App{}, nil, logger.Nop())
	assert.ErrorIs(t, err, service.ErrVersionIsNotSpecified)
}
