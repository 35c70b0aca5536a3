// Package http2policy carries the HTTP/2 preface parameters that make a
// connection's frame traffic match a named browser: SETTINGS values and
// their transmission order, the initial WINDOW_UPDATE, the HEADERS
// pseudo-header order, and default stream-priority parameters. It can
// also render the connection preface itself (spec.md §4.3), using
// golang.org/x/net/http2's Framer the way the teacher's vendored
// internal/http2 writes these exact frames in transport.go, so the bytes
// on the wire are part of what this package is responsible for, not left
// to a caller to get right.
package http2policy

import (
	"fmt"
	"io"

	"golang.org/x/net/http2"
)

// SettingID names, re-exported from golang.org/x/net/http2 so profile
// tables never need to import http2 directly.
const (
	SettingHeaderTableSize      = http2.SettingHeaderTableSize
	SettingEnablePush           = http2.SettingEnablePush
	SettingMaxConcurrentStreams = http2.SettingMaxConcurrentStreams
	SettingInitialWindowSize    = http2.SettingInitialWindowSize
	SettingMaxFrameSize         = http2.SettingMaxFrameSize
	SettingMaxHeaderListSize    = http2.SettingMaxHeaderListSize
)

// defaultConnectionWindowSize is RFC 7540's initial connection-level flow
// control window; a profile that requests a larger connection window
// triggers a WINDOW_UPDATE carrying the delta (spec.md §4.3 (ii)).
const defaultConnectionWindowSize = 65535

// Setting is one (ID, value) pair as transmitted in a SETTINGS frame.
type Setting = http2.Setting

// SettingID identifies a SETTINGS parameter.
type SettingID = http2.SettingID

// PriorityParam is the stream-dependency/weight pair carried either on a
// PRIORITY frame or as a flag on a HEADERS frame.
type PriorityParam = http2.PriorityParam

// PriorityFrame is a standalone PRIORITY frame sent ahead of a stream's
// HEADERS, used by the Firefox family to pre-declare a priority tree.
type PriorityFrame struct {
	StreamID      uint32
	PriorityParam PriorityParam
}

// Http2FrameSettings is the complete per-profile HTTP/2 frame policy
// (spec.md §3, Http2FrameSettings / §4.3). Pointer fields are omitted
// from the wire, not sent as zero, when nil.
type Http2FrameSettings struct {
	InitialStreamWindowSize     *uint32
	InitialConnectionWindowSize *uint32
	MaxConcurrentStreams        *uint32
	MaxHeaderListSize           *uint32
	HeaderTableSize             *uint32
	MaxFrameSize                *uint32
	EnablePush                  *bool

	// SettingsOrder is the sequence of SETTINGS identifiers to transmit.
	// Only identifiers whose corresponding field above is non-nil are
	// actually emitted; SettingsOrder governs the order of those that are.
	SettingsOrder []SettingID

	// HeadersPseudoOrder is the order of :method, :scheme, :authority,
	// :path within HEADERS frames.
	HeadersPseudoOrder []string

	// HeadersPriority is the default priority parameter attached to
	// HEADERS frames (as the HEADERS-frame PRIORITY flag), when set.
	HeadersPriority *PriorityParam

	// PriorityFrames are standalone PRIORITY frames emitted once at
	// connection start, ahead of the first request (Firefox family).
	PriorityFrames []PriorityFrame
}

// Settings renders the non-nil fields as an ordered []Setting following
// SettingsOrder. An identifier absent from SettingsOrder, or whose field
// is nil, is not emitted at all, matching spec.md §4.3 (i): "omitted
// values are not emitted, not zero".
func (s Http2FrameSettings) Settings() []Setting {
	if s.SettingsOrder == nil {
		return nil
	}
	out := make([]Setting, 0, len(s.SettingsOrder))
	for _, id := range s.SettingsOrder {
		val, ok := s.valueFor(id)
		if !ok {
			continue
		}
		out = append(out, Setting{ID: id, Val: val})
	}
	return out
}

func (s Http2FrameSettings) valueFor(id SettingID) (uint32, bool) {
	switch id {
	case SettingHeaderTableSize:
		if s.HeaderTableSize != nil {
			return *s.HeaderTableSize, true
		}
	case SettingEnablePush:
		if s.EnablePush != nil {
			if *s.EnablePush {
				return 1, true
			}
			return 0, true
		}
	case SettingMaxConcurrentStreams:
		if s.MaxConcurrentStreams != nil {
			return *s.MaxConcurrentStreams, true
		}
	case SettingInitialWindowSize:
		if s.InitialStreamWindowSize != nil {
			return *s.InitialStreamWindowSize, true
		}
	case SettingMaxHeaderListSize:
		if s.MaxHeaderListSize != nil {
			return *s.MaxHeaderListSize, true
		}
	case SettingMaxFrameSize:
		if s.MaxFrameSize != nil {
			return *s.MaxFrameSize, true
		}
	}
	return 0, false
}

// ConnectionWindowUpdateDelta returns the WINDOW_UPDATE increment to send
// on stream 0 right after the preface, and whether one is needed at all
// (spec.md §4.3 (ii)): only when the requested connection window exceeds
// the RFC default of 65535.
func (s Http2FrameSettings) ConnectionWindowUpdateDelta() (delta uint32, needed bool) {
	if s.InitialConnectionWindowSize == nil {
		return 0, false
	}
	want := *s.InitialConnectionWindowSize
	if want <= defaultConnectionWindowSize {
		return 0, false
	}
	return want - defaultConnectionWindowSize, true
}

// WritePreface writes the client connection preface (the fixed 24-byte
// magic, RFC 7540 §3.5), the SETTINGS frame, the connection-level
// WINDOW_UPDATE (when needed) and any standalone PRIORITY frames, in
// that order, onto w. This is the one slice of "the HTTP/2 encoder" that
// belongs to the core: everything here is connection-setup, not
// per-request HEADERS encoding, which is the HTTP layer's job (spec.md
// §1 Out of scope).
func (s Http2FrameSettings) WritePreface(w io.Writer) error {
	if _, err := io.WriteString(w, http2.ClientPreface); err != nil {
		return fmt.Errorf("http2policy: write client preface: %w", err)
	}
	fr := http2.NewFramer(w, nil)
	if err := fr.WriteSettings(s.Settings()...); err != nil {
		return fmt.Errorf("http2policy: write settings frame: %w", err)
	}
	if delta, ok := s.ConnectionWindowUpdateDelta(); ok {
		if err := fr.WriteWindowUpdate(0, delta); err != nil {
			return fmt.Errorf("http2policy: write connection window update: %w", err)
		}
	}
	for _, pf := range s.PriorityFrames {
		if err := fr.WritePriority(pf.StreamID, pf.PriorityParam); err != nil {
			return fmt.Errorf("http2policy: write priority frame for stream %d: %w", pf.StreamID, err)
		}
	}
	return nil
}
