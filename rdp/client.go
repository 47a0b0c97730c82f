// Copyright © 2026 The gripdap authors

package rdp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/rdbg/gripdap/rdp"

// Client issues requests to the remote debuggee. The adapter layer
// depends only on this interface so tests can substitute a fake
// debuggee without a network connection.
type Client interface {
	// FetchProperties resolves an object grip into the object's own
	// properties. A failed fetch is an expected runtime condition (the
	// debuggee may be gone) and is reported to the caller, never
	// collapsed into an empty map.
	FetchProperties(ctx context.Context, obj *ObjectGrip) (PropertyDescriptorMap, error)
}

// Conn is a Client over a TCP connection to the debuggee, speaking the
// protocol's "length:JSON" packet framing. Requests are serialized: one
// round trip is in flight at a time, which matches the cooperative
// single-flow scheduling of a debugging session.
type Conn struct {
	mu     sync.Mutex
	conn   net.Conn
	br     *bufio.Reader
	log    *logrus.Entry
	tracer trace.Tracer
}

var _ Client = (*Conn)(nil)

// Dial connects to a remote debuggee at addr.
func Dial(addr string, logger *logrus.Logger) (*Conn, error) {
	if logger == nil {
		logger = logrus.New()
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rdp: dial %s: %w", addr, err)
	}
	return NewConn(conn, logger), nil
}

// NewConn wraps an established connection. Ownership of conn passes to
// the returned Conn.
func NewConn(conn net.Conn, logger *logrus.Logger) *Conn {
	return &Conn{
		conn:   conn,
		br:     bufio.NewReader(conn),
		log:    logger.WithField("component", "rdp"),
		tracer: otel.Tracer(tracerName),
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// request performs one framed round trip. The caller owns the response
// decoding; error replies from the debuggee are surfaced as errors.
func (c *Conn) request(ctx context.Context, to, typ string, req map[string]interface{}, resp interface{}) error {
	ctx, span := c.tracer.Start(ctx, "rdp.request", trace.WithAttributes(
		attribute.String("rdp.actor", to),
		attribute.String("rdp.type", typ),
	))
	defer span.End()

	if req == nil {
		req = map[string]interface{}{}
	}
	req["to"] = to
	req["type"] = typ

	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("rdp: set deadline: %w", err)
		}
		defer c.conn.SetDeadline(noDeadline) //nolint:errcheck // best-effort reset
	}

	if err := writePacket(c.conn, req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	raw, err := readPacket(c.br)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	c.log.WithFields(logrus.Fields{"actor": to, "type": typ}).Debug("round trip complete")

	var errReply struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &errReply); err == nil && errReply.Error != "" {
		err := fmt.Errorf("rdp: %s request failed: %s: %s", typ, errReply.Error, errReply.Message)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := json.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("rdp: decode %s reply: %w", typ, err)
	}
	return nil
}

// FetchProperties implements Client.
func (c *Conn) FetchProperties(ctx context.Context, obj *ObjectGrip) (PropertyDescriptorMap, error) {
	var reply struct {
		OwnProperties PropertyDescriptorMap `json:"ownProperties"`
	}
	if err := c.request(ctx, obj.Actor, "prototypeAndProperties", nil, &reply); err != nil {
		return nil, err
	}
	return reply.OwnProperties, nil
}

// writePacket frames and writes one message: the decimal byte length of
// the JSON body, a colon, then the body.
func writePacket(w io.Writer, msg interface{}) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("rdp: encode packet: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(strconv.Itoa(len(body)))
	buf.WriteByte(':')
	buf.Write(body)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("rdp: write packet: %w", err)
	}
	return nil
}

// readPacket reads one framed message and returns the raw JSON body.
func readPacket(br *bufio.Reader) ([]byte, error) {
	header, err := br.ReadString(':')
	if err != nil {
		return nil, fmt.Errorf("rdp: read packet header: %w", err)
	}
	n, err := strconv.Atoi(header[:len(header)-1])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("rdp: malformed packet length %q", header)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, fmt.Errorf("rdp: read packet body: %w", err)
	}
	return body, nil
}

// noDeadline clears a connection deadline.
var noDeadline = time.Time{}
