// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/jllopis/rolepanel/pkg/errlog"
	"github.com/jllopis/rolepanel/pkg/errors"
)

const (
	// ActiveKey is the side-channel key holding the active person id.
	ActiveKey = "_activePerson"

	// LegacyActiveKey is the side-channel key written by earlier
	// deployments of the panel. It is read but never written.
	LegacyActiveKey = "_selectedUserId"

	sideChannelPrefix = "_"
)

const fence = "```"

// Encode serializes a to base64(JSON). Keys are emitted in sorted order, so
// equal assignments always produce the same blob.
func Encode(a Assignment) string {
	payload := make(map[string]string, len(a.roles)+1)
	for role, name := range a.roles {
		payload[role] = name
	}
	if a.active != "" {
		payload[ActiveKey] = a.active
	}
	// A map[string]string always marshals.
	raw, _ := json.Marshal(payload)
	return base64.StdEncoding.EncodeToString(raw)
}

// Fence wraps an encoded blob in the code fence Decode looks for.
func Fence(blob string) string {
	return fence + blob + fence
}

// DecodeBlob parses a blob produced by Encode.
func DecodeBlob(blob string) (Assignment, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return New(), errors.New(errors.CodeDecodeFailure, "state block is not base64", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		return New(), errors.New(errors.CodeDecodeFailure, "state block is not a JSON object of strings", err)
	}
	if payload == nil {
		return New(), errors.New(errors.CodeDecodeFailure, "state block is not a JSON object", nil)
	}

	active := payload[ActiveKey]
	if active == "" {
		active = payload[LegacyActiveKey]
	}
	for k := range payload {
		if strings.HasPrefix(k, sideChannelPrefix) {
			delete(payload, k)
		}
	}
	return FromRoles(payload).WithActive(active), nil
}

// Extract returns the contents of the last code fence in text. The state
// block is always rendered after the table, and base64 has no backticks, so
// fences inside assignee names or labels cannot be mistaken for it.
func Extract(text string) (string, bool) {
	end := strings.LastIndex(text, fence)
	if end < 0 {
		return "", false
	}
	start := strings.LastIndex(text[:end], fence)
	if start < 0 {
		return "", false
	}
	return strings.TrimSpace(text[start+len(fence) : end]), true
}

// Codec decodes panel state out of rendered message text.
type Codec struct {
	sink errlog.Sink
}

// NewCodec creates a codec that reports decode failures to sink.
func NewCodec(sink errlog.Sink) *Codec {
	if sink == nil {
		sink = errlog.Discard
	}
	return &Codec{sink: sink}
}

// Decode recovers the assignment embedded in text. It never fails: a
// missing, corrupt or foreign state block yields an empty assignment and
// exactly one report to the sink.
func (c *Codec) Decode(ctx context.Context, text string) Assignment {
	blob, ok := Extract(text)
	if !ok {
		c.sink.Record(ctx, errors.New(errors.CodeDecodeFailure, "message has no state block", nil).
			WithRecoverable(true))
		return New()
	}
	a, err := DecodeBlob(blob)
	if err != nil {
		c.sink.Record(ctx, err)
		return New()
	}
	return a
}
