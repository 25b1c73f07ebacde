// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/mock"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/internal/utils"
	"github.com/MKhiriev/go-mod-config/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newClientSession(t *testing.T, client *exampleSide, serverAdapter *mock.MockServerAdapter) service.ClientSessionService {
	t.Helper()
	protocol := syncproto.NewProtocol(client.registry, nil, logger.Nop(), nil)
	return service.NewClientSessionService(client.registry, protocol, serverAdapter, "test-client", testAppConfig.HashKey, logger.Nop())
}

// handshakeFrom connects to a real server session service, so the client
// tests exercise the exact bytes the server produces.
func handshakeFrom(t *testing.T, server *exampleSide) models.HandshakeResponse {
	t.Helper()
	svc := newSessionService(t, server, nil, "peer-1")
	resp, _, err := svc.Connect(context.Background(), models.HandshakeRequest{})
	require.NoError(t, err)
	return resp
}

func TestClientSession_JoinAndLeave(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	server := newExampleSide(t, 1)
	server.set(t, "world.maxPlayers", modconfig.IntValue(25))
	server.set(t, "world.difficulty", modconfig.EnumValue(2))
	server.set(t, "debugMode", modconfig.BoolValue(true))

	client := newExampleSide(t, 1)
	client.set(t, "world.maxPlayers", modconfig.IntValue(4))

	serverAdapter.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.HandshakeRequest) (models.HandshakeResponse, error) {
			assert.Equal(t, "test-client", req.Client)
			assert.Equal(t, syncproto.Fingerprints(client.registry), req.Fingerprints)
			return handshakeFrom(t, server), nil
		})
	serverAdapter.EXPECT().Disconnect(gomock.Any()).Return(nil)

	svc := newClientSession(t, client, serverAdapter)

	result, err := svc.Join(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.JoinResult{PeerID: "peer-1", Applied: 1}, result)
	assert.True(t, svc.Joined())

	assert.Equal(t, 25, client.maxPlayers.Get())
	assert.Equal(t, difficulty("HARD"), client.level.Get())
	assert.False(t, client.debugMode.Get(), "restart values that are not synced stay local")

	_, err = svc.Join(ctx)
	assert.ErrorIs(t, err, service.ErrAlreadyJoined)

	require.NoError(t, svc.Leave(ctx))
	assert.False(t, svc.Joined())
	assert.Equal(t, 4, client.maxPlayers.Get(), "local value is back after leaving")

	assert.ErrorIs(t, svc.Leave(ctx), service.ErrNotJoined)
}

func TestClientSession_JoinClampsWiderServerRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	server := newExampleSide(t, 2)
	server.set(t, "ratio", modconfig.FloatValue(1.7))
	client := newExampleSide(t, 1)

	serverAdapter.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(handshakeFrom(t, server), nil)

	_, err := newClientSession(t, client, serverAdapter).Join(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, client.ratio.Get())
}

func TestClientSession_JoinSkipsUnknownConfigs(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	server := newExampleSide(t, 1)
	resp := handshakeFrom(t, server)

	unknown := append([]byte{5}, "other"...)
	resp.Messages = append([][]byte{unknown}, resp.Messages...)
	resp.Hash = utils.NewHasher(testAppConfig.HashKey).SumHex(resp.Messages...)

	serverAdapter.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(resp, nil)

	result, err := newClientSession(t, newExampleSide(t, 1), serverAdapter).Join(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Discarded)
}

func TestClientSession_JoinHashMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	server := newExampleSide(t, 1)
	server.set(t, "world.maxPlayers", modconfig.IntValue(25))
	resp := handshakeFrom(t, server)
	resp.Hash = utils.NewHasher("another-key").SumHex(resp.Messages...)

	serverAdapter.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(resp, nil)
	serverAdapter.EXPECT().Disconnect(gomock.Any()).Return(nil)

	client := newExampleSide(t, 1)
	svc := newClientSession(t, client, serverAdapter)

	_, err := svc.Join(context.Background())
	assert.ErrorIs(t, err, service.ErrHashMismatch)
	assert.False(t, svc.Joined())
	assert.Equal(t, 10, client.maxPlayers.Get())
}

func TestClientSession_JoinConnectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	errDown := errors.New("connection refused")
	serverAdapter.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(models.HandshakeResponse{}, errDown)

	svc := newClientSession(t, newExampleSide(t, 1), serverAdapter)

	_, err := svc.Join(context.Background())
	assert.ErrorIs(t, err, service.ErrConnectServer)
	assert.ErrorIs(t, err, errDown)
	assert.False(t, svc.Joined())
}

func TestClientSession_LeaveClearsEvenIfServerUnreachable(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	server := newExampleSide(t, 1)
	server.set(t, "world.maxPlayers", modconfig.IntValue(25))

	errDown := errors.New("connection refused")
	serverAdapter.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(handshakeFrom(t, server), nil)
	serverAdapter.EXPECT().Disconnect(gomock.Any()).Return(errDown)

	client := newExampleSide(t, 1)
	svc := newClientSession(t, client, serverAdapter)

	_, err := svc.Join(ctx)
	require.NoError(t, err)
	require.Equal(t, 25, client.maxPlayers.Get())

	err = svc.Leave(ctx)
	assert.ErrorIs(t, err, errDown)
	assert.False(t, svc.Joined())
	assert.Equal(t, 10, client.maxPlayers.Get())
}
