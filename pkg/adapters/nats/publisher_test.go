package nats_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	placifynats "github.com/nocap-placify/placify/pkg/adapters/nats"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runServer(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("embedded NATS server failed to start")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func TestPublisher_Publish(t *testing.T) {
	ns := runServer(t)

	sub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer sub.Close()
	msgs := make(chan *nats.Msg, 1)
	_, err = sub.ChanSubscribe("placify.submissions.>", msgs)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	pub, err := placifynats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer pub.Close()
	require.NoError(t, pub.Ping(context.Background()))

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	err = pub.Publish(context.Background(), &domain.SubmitEvent{
		EventBase: domain.EventBase{
			Timestamp: now,
			Type:      domain.EventSubmitted,
			SessionID: "s-1",
			WizardID:  domain.WizardMentorSession,
		},
		Target:       domain.TargetMentorSessions,
		Duration:     1500 * time.Millisecond,
		Confirmation: "mentor session #4 recorded",
	})
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		assert.Equal(t, "placify.submissions.mentor-session", msg.Subject)
		var m placifynats.Message
		require.NoError(t, json.Unmarshal(msg.Data, &m))
		assert.Equal(t, placifynats.EventAccepted, m.Type)
		assert.Equal(t, "s-1", m.SessionID)
		assert.Equal(t, int64(1500), m.DurationMS)
		assert.Equal(t, "mentor session #4 recorded", m.Confirmation)
		assert.True(t, now.Equal(m.Timestamp))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestPublisher_CanceledContext(t *testing.T) {
	ns := runServer(t)
	conn, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer conn.Close()

	pub := placifynats.New(conn, placifynats.WithSubjectPrefix("test"))
	assert.Equal(t, "test.student-registration", pub.Subject(domain.WizardStudentRegistration))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = pub.Publish(ctx, &domain.SubmitEvent{EventBase: domain.EventBase{WizardID: "w"}})
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, pub.Close())
	assert.True(t, conn.IsConnected())
}

func TestPublisher_ContextWithoutDeadline(t *testing.T) {
	ns := runServer(t)
	conn, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer conn.Close()

	msgs := make(chan *nats.Msg, 1)
	_, err = conn.ChanSubscribe("placify.submissions.>", msgs)
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	pub := placifynats.New(conn, placifynats.WithFlushTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	require.False(t, hasDeadline)

	err = pub.Publish(ctx, &domain.SubmitEvent{
		EventBase: domain.EventBase{SessionID: "s-2", WizardID: domain.WizardStudentRegistration},
		Target:    domain.TargetStudents,
	})
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		assert.Equal(t, "placify.submissions.student-registration", msg.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
