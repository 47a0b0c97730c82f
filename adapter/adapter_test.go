// Copyright © 2026 The gripdap authors

package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rdbg/gripdap/rdp"
)

// fakeClient is an in-memory debuggee: a map from actor id to that
// object's properties. It counts fetches per actor so tests can assert
// on deduplication and caching.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string]rdp.PropertyDescriptorMap
	fetches map[string]int
	err     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects: make(map[string]rdp.PropertyDescriptorMap),
		fetches: make(map[string]int),
	}
}

func (c *fakeClient) addObject(actor string, props rdp.PropertyDescriptorMap) *rdp.ObjectGrip {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[actor] = props
	return &rdp.ObjectGrip{Actor: actor, Class: "Object"}
}

func (c *fakeClient) fetchCount(actor string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[actor]
}

func (c *fakeClient) FetchProperties(ctx context.Context, obj *rdp.ObjectGrip) (rdp.PropertyDescriptorMap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches[obj.Actor]++
	if c.err != nil {
		return nil, c.err
	}
	props, ok := c.objects[obj.Actor]
	if !ok {
		return nil, fmt.Errorf("no such actor %q", obj.Actor)
	}
	return props, nil
}

func newTestThread(client rdp.Client) *ThreadAdapter {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewThreadAdapter("Main", NewRegistry(), client, logger)
}

// valueDesc wraps a grip as a plain-value property descriptor.
func valueDesc(g rdp.Grip) rdp.PropertyDescriptor {
	return rdp.PropertyDescriptor{Value: &g, Enumerable: true, Writable: true}
}

// names extracts the variable names in order.
func names(vars []*Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name
	}
	return out
}
