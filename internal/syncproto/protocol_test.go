// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto_test

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/mock"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/store"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// addModule registers one more single-entry syncable module.
func addModule(t *testing.T, registry *modconfig.Registry, id string) {
	t.Helper()
	b := modconfig.NewCommonBuilder(registry, store.NewMemoryBackend(), id, logger.Nop())
	b.DefineInt("count", 1, 0, 100)
	_, err := b.Build(context.Background())
	require.NoError(t, err)
}

func idOf(payload []byte) string {
	n, k := binary.Uvarint(payload)
	return string(payload[k : k+int(n)])
}

func TestProtocol_SyncsPeerOnceInRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	sender := mock.NewMockSender(ctrl)
	m := metrics.NewMetrics()

	s := newSide(t)
	addModule(t, s.registry, "second")
	local := modconfig.NewCommonBuilder(s.registry, store.NewMemoryBackend(), "local", logger.Nop())
	local.DefineBool("verbose", true, modconfig.DontSync())
	_, err := local.Build(ctx)
	require.NoError(t, err)

	var sent []string
	sender.EXPECT().Send(gomock.Any(), syncproto.PeerID("peer-1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ syncproto.PeerID, payload []byte) error {
			sent = append(sent, idOf(payload))
			return nil
		}).Times(2)

	p := syncproto.NewProtocol(s.registry, sender, logger.Nop(), m)
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))

	require.NoError(t, p.OnPeerConnected(ctx, "peer-1"))
	assert.Equal(t, []string{"example", "second"}, sent)
	assert.Equal(t, syncproto.PeerSynced, p.State("peer-1"))

	require.NoError(t, p.OnPeerConnected(ctx, "peer-1"), "a synced peer is not sent anything again")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeersSynced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesSent.WithLabelValues("example")))
}

func TestProtocol_CancelledContextSendsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := gomock.NewController(t)
	sender := mock.NewMockSender(ctrl)

	p := syncproto.NewProtocol(newSide(t).registry, sender, logger.Nop(), nil)

	err := p.OnPeerConnected(ctx, "peer-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))
}

func TestProtocol_SendFailureLeavesPeerUnsynced(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	sender := mock.NewMockSender(ctrl)

	s := newSide(t)
	errSend := errors.New("connection reset")

	gomock.InOrder(
		sender.EXPECT().Send(gomock.Any(), syncproto.PeerID("peer-1"), gomock.Any()).Return(errSend),
		sender.EXPECT().Send(gomock.Any(), syncproto.PeerID("peer-1"), gomock.Any()).Return(nil),
	)

	p := syncproto.NewProtocol(s.registry, sender, logger.Nop(), nil)

	err := p.OnPeerConnected(ctx, "peer-1")
	assert.ErrorIs(t, err, errSend)
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))

	require.NoError(t, p.OnPeerConnected(ctx, "peer-1"), "a failed peer can be synced again")
	assert.Equal(t, syncproto.PeerSynced, p.State("peer-1"))
}

func TestProtocol_NoSenderIsEncodeFailure(t *testing.T) {
	p := syncproto.NewProtocol(newSide(t).registry, nil, logger.Nop(), nil)

	err := p.OnPeerConnected(context.Background(), "peer-1")
	assert.ErrorIs(t, err, syncproto.ErrEncodeFailure)
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))
}

func TestProtocol_DisconnectDuringSync(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	sender := mock.NewMockSender(ctrl)

	s := newSide(t)
	addModule(t, s.registry, "second")

	var p *syncproto.Protocol
	sender.EXPECT().Send(gomock.Any(), syncproto.PeerID("peer-1"), gomock.Any()).
		DoAndReturn(func(ctx context.Context, peer syncproto.PeerID, _ []byte) error {
			p.OnPeerDisconnected(ctx, peer)
			return nil
		}).Times(1)

	p = syncproto.NewProtocol(s.registry, sender, logger.Nop(), nil)

	err := p.OnPeerConnected(ctx, "peer-1")
	assert.ErrorIs(t, err, syncproto.ErrPeerDisconnected)
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))
}

func TestProtocol_DisconnectClearsOverrides(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	sender := mock.NewMockSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m := metrics.NewMetrics()

	s := newSide(t)
	p := syncproto.NewProtocol(s.registry, sender, logger.Nop(), m)
	require.NoError(t, p.OnPeerConnected(ctx, "peer-1"))

	require.NoError(t, s.module.SetSyncValue("maxPlayers", modconfig.IntValue(3)))
	require.Equal(t, 3, s.maxPlayers.Get())

	p.OnPeerDisconnected(ctx, "peer-1")
	assert.Equal(t, 10, s.maxPlayers.Get())
	assert.Equal(t, syncproto.PeerUnsynced, p.State("peer-1"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PeersSynced))

	p.OnPeerDisconnected(ctx, "peer-1")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PeersSynced), "unknown peers do not move the gauge")
}

// ── receiving side ────────────────────────────────────────────────────────────

func TestProtocol_HandleMessageAppliesServerValues(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics()

	server := newSide(t)
	server.store(t, "maxPlayers", modconfig.IntValue(25))
	server.store(t, "difficulty", modconfig.EnumValue(2))
	server.store(t, "debugMode", modconfig.BoolValue(true))

	payload, err := syncproto.Encode(server.module)
	require.NoError(t, err)

	client := newSide(t)
	p := syncproto.NewProtocol(client.registry, nil, logger.Nop(), m)
	require.NoError(t, p.HandleMessage(ctx, payload))

	assert.Equal(t, 25, client.maxPlayers.Get())
	assert.Equal(t, difficulty("HARD"), client.level.Get())
	assert.False(t, client.debugMode.Get(), "values that are not synced stay local")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesReceived.WithLabelValues("example")))
}

func TestProtocol_HandleMessageClampsWiderServerRange(t *testing.T) {
	payload := header("example")
	payload = binary.BigEndian.AppendUint64(payload, 500)
	payload = append(payload, 1)
	payload = binary.BigEndian.AppendUint64(payload, math.Float64bits(1.7))
	payload = append(payload, 0)

	client := newSide(t)
	p := syncproto.NewProtocol(client.registry, nil, logger.Nop(), nil)
	require.NoError(t, p.HandleMessage(context.Background(), payload))

	assert.Equal(t, 50, client.maxPlayers.Get())
	assert.Equal(t, 1.0, client.ratio.Get())
	assert.False(t, client.enabled.Get())
}

func TestProtocol_HandleMessageTruncated(t *testing.T) {
	m := metrics.NewMetrics()

	payload := header("example")
	payload = binary.BigEndian.AppendUint64(payload, 20)
	payload = append(payload, 0)
	payload = append(payload, 0x3f)

	client := newSide(t)
	p := syncproto.NewProtocol(client.registry, nil, logger.Nop(), m)
	require.NoError(t, p.HandleMessage(context.Background(), payload))

	assert.Equal(t, 20, client.maxPlayers.Get())
	assert.Equal(t, difficulty("EASY"), client.level.Get())
	assert.Equal(t, 0.5, client.ratio.Get())
	assert.True(t, client.enabled.Get())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues("truncated")))
}

func TestProtocol_HandleMessageSkipsInvalidValues(t *testing.T) {
	m := metrics.NewMetrics()

	payload := header("example")
	payload = binary.BigEndian.AppendUint64(payload, 20)
	payload = binary.AppendUvarint(payload, 5)
	payload = binary.BigEndian.AppendUint64(payload, math.Float64bits(math.NaN()))
	payload = append(payload, 7)

	client := newSide(t)
	p := syncproto.NewProtocol(client.registry, nil, logger.Nop(), m)
	require.NoError(t, p.HandleMessage(context.Background(), payload))

	assert.Equal(t, 20, client.maxPlayers.Get())
	assert.Equal(t, difficulty("NORMAL"), client.level.Get())
	assert.Equal(t, 0.5, client.ratio.Get())
	assert.True(t, client.enabled.Get())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues("invalid_value")))
}

func TestProtocol_HandleMessageUnknownModule(t *testing.T) {
	m := metrics.NewMetrics()
	client := newSide(t)
	p := syncproto.NewProtocol(client.registry, nil, logger.Nop(), m)

	err := p.HandleMessage(context.Background(), header("unknown"))
	assert.ErrorIs(t, err, syncproto.ErrUnknownModule)
	assert.Equal(t, 10, client.maxPlayers.Get())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues("unknown_module")))
}

func TestProtocol_HandleMessageMalformed(t *testing.T) {
	p := syncproto.NewProtocol(newSide(t).registry, nil, logger.Nop(), nil)

	err := p.HandleMessage(context.Background(), []byte{0x05, 'a'})
	assert.ErrorIs(t, err, syncproto.ErrMalformedMessage)
}

func TestPeerState_String(t *testing.T) {
	assert.Equal(t, "unsynced", syncproto.PeerUnsynced.String())
	assert.Equal(t, "syncing", syncproto.PeerSyncing.String())
	assert.Equal(t, "synced", syncproto.PeerSynced.String())
	assert.Equal(t, "unknown", syncproto.PeerState(9).String())
}
