// Copyright © 2026 The gripdap authors

package rdp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePacket(&buf, map[string]interface{}{"to": "root", "type": "ping"}))

	// The frame is "length:body" with the length counting body bytes.
	raw := buf.String()
	assert.Regexp(t, `^\d+:\{`, raw)

	body, err := readPacket(bufio.NewReader(&buf))
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "root", msg["to"])
	assert.Equal(t, "ping", msg["type"])
}

func TestReadPacket_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "missing separator", in: "12345"},
		{name: "non-numeric length", in: "abc:{}"},
		{name: "negative length", in: "-1:{}"},
		{name: "truncated body", in: "10:{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readPacket(bufio.NewReader(bytes.NewBufferString(tt.in)))
			assert.Error(t, err)
		})
	}
}

// serveOne runs a fake debuggee on the server side of a pipe that
// answers the first request with the given reply.
func serveOne(t *testing.T, conn net.Conn, reply interface{}) {
	t.Helper()
	go func() {
		br := bufio.NewReader(conn)
		if _, err := readPacket(br); err != nil {
			return
		}
		_ = writePacket(conn, reply)
	}()
}

func TestConnFetchProperties(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close() //nolint:errcheck // test cleanup

	serveOne(t, server, map[string]interface{}{
		"from": "obj1",
		"ownProperties": map[string]interface{}{
			"x": map[string]interface{}{"value": 1, "enumerable": true},
			"s": map[string]interface{}{"value": "str"},
		},
	})

	c := NewConn(client, logrus.New())
	defer c.Close() //nolint:errcheck // test cleanup

	props, err := c.FetchProperties(context.Background(), &ObjectGrip{Actor: "obj1"})
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.NotNil(t, props["x"].Value)
	assert.Equal(t, Number(1), *props["x"].Value)
	require.NotNil(t, props["s"].Value)
	assert.Equal(t, String("str"), *props["s"].Value)
}

func TestConnFetchProperties_ErrorReply(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close() //nolint:errcheck // test cleanup

	serveOne(t, server, map[string]interface{}{
		"from":    "obj1",
		"error":   "noSuchActor",
		"message": "actor obj1 is gone",
	})

	c := NewConn(client, logrus.New())
	defer c.Close() //nolint:errcheck // test cleanup

	_, err := c.FetchProperties(context.Background(), &ObjectGrip{Actor: "obj1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noSuchActor")
	assert.Contains(t, err.Error(), "actor obj1 is gone")
}
