package http2policy

import (
	"bytes"
	"io"
	"testing"

	"golang.org/x/net/http2"
)

// chrome117Settings mirrors pkg/impersonate's Chrome117 profile (spec.md
// §8 scenario 1): HEADER_TABLE_SIZE=65536, ENABLE_PUSH=0,
// INITIAL_WINDOW_SIZE=6291456, MAX_HEADER_LIST_SIZE=262144, connection
// window 15728640.
func chrome117Settings() Http2FrameSettings {
	return Http2FrameSettings{
		InitialStreamWindowSize:     u32(6291456),
		InitialConnectionWindowSize: u32(15728640),
		MaxHeaderListSize:           u32(262144),
		HeaderTableSize:             u32(65536),
		EnablePush:                  boolp(false),
		SettingsOrder: []SettingID{
			SettingHeaderTableSize,
			SettingEnablePush,
			SettingInitialWindowSize,
			SettingMaxHeaderListSize,
		},
	}
}

func u32(v uint32) *uint32 { return &v }
func boolp(v bool) *bool   { return &v }

func TestSettingsOrdersChrome117Exactly(t *testing.T) {
	s := chrome117Settings()
	got := s.Settings()
	want := []Setting{
		{ID: SettingHeaderTableSize, Val: 65536},
		{ID: SettingEnablePush, Val: 0},
		{ID: SettingInitialWindowSize, Val: 6291456},
		{ID: SettingMaxHeaderListSize, Val: 262144},
	}
	if len(got) != len(want) {
		t.Fatalf("Settings() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Settings()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSettingsOmitsNilFieldsEvenWhenOrdered(t *testing.T) {
	s := Http2FrameSettings{
		HeaderTableSize: u32(4096),
		SettingsOrder: []SettingID{
			SettingHeaderTableSize,
			SettingMaxConcurrentStreams, // nil: must not appear
		},
	}
	got := s.Settings()
	if len(got) != 1 || got[0].ID != SettingHeaderTableSize {
		t.Fatalf("Settings() = %+v, want only HeaderTableSize", got)
	}
}

func TestSettingsNilOrderYieldsNil(t *testing.T) {
	s := Http2FrameSettings{HeaderTableSize: u32(4096)}
	if got := s.Settings(); got != nil {
		t.Fatalf("Settings() = %+v, want nil with no SettingsOrder", got)
	}
}

func TestConnectionWindowUpdateDeltaChrome117(t *testing.T) {
	s := chrome117Settings()
	delta, needed := s.ConnectionWindowUpdateDelta()
	if !needed {
		t.Fatal("ConnectionWindowUpdateDelta() reported not needed, want needed")
	}
	if want := uint32(15728640 - 65535); delta != want {
		t.Fatalf("delta = %d, want %d", delta, want)
	}
}

func TestConnectionWindowUpdateDeltaNotNeededAtDefault(t *testing.T) {
	s := Http2FrameSettings{InitialConnectionWindowSize: u32(65535)}
	if _, needed := s.ConnectionWindowUpdateDelta(); needed {
		t.Fatal("ConnectionWindowUpdateDelta() reported needed at the RFC default")
	}
}

func TestConnectionWindowUpdateDeltaNilFieldNotNeeded(t *testing.T) {
	s := Http2FrameSettings{}
	if _, needed := s.ConnectionWindowUpdateDelta(); needed {
		t.Fatal("ConnectionWindowUpdateDelta() reported needed with no field set")
	}
}

// TestWritePrefaceChrome117Exact checks the byte-exact preface spec.md
// §8 scenario 1 describes: the 24-byte client preface, a SETTINGS frame
// carrying the four values in order, and a connection WINDOW_UPDATE
// with delta 15728640-65535, with no PRIORITY frames (Chrome declares
// none at connection start).
func TestWritePrefaceChrome117Exact(t *testing.T) {
	s := chrome117Settings()
	var buf bytes.Buffer
	if err := s.WritePreface(&buf); err != nil {
		t.Fatalf("WritePreface: %v", err)
	}

	if got := string(buf.Bytes()[:len(http2.ClientPreface)]); got != http2.ClientPreface {
		t.Fatalf("preface = %q, want %q", got, http2.ClientPreface)
	}

	fr := http2.NewFramer(nil, bytes.NewReader(buf.Bytes()[len(http2.ClientPreface):]))
	f, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame(settings): %v", err)
	}
	sf, ok := f.(*http2.SettingsFrame)
	if !ok {
		t.Fatalf("first frame = %T, want *http2.SettingsFrame", f)
	}
	wantVals := []struct {
		id  SettingID
		val uint32
	}{
		{SettingHeaderTableSize, 65536},
		{SettingEnablePush, 0},
		{SettingInitialWindowSize, 6291456},
		{SettingMaxHeaderListSize, 262144},
	}
	if sf.NumSettings() != len(wantVals) {
		t.Fatalf("NumSettings() = %d, want %d", sf.NumSettings(), len(wantVals))
	}
	for i, want := range wantVals {
		got := sf.Setting(i)
		if got.ID != want.id || got.Val != want.val {
			t.Fatalf("setting[%d] = %+v, want {%v %d}", i, got, want.id, want.val)
		}
	}

	f, err = fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame(window update): %v", err)
	}
	wf, ok := f.(*http2.WindowUpdateFrame)
	if !ok {
		t.Fatalf("second frame = %T, want *http2.WindowUpdateFrame", f)
	}
	if want := uint32(15728640 - 65535); wf.Increment != want {
		t.Fatalf("WindowUpdateFrame.Increment = %d, want %d", wf.Increment, want)
	}
	if wf.StreamID != 0 {
		t.Fatalf("WindowUpdateFrame.StreamID = %d, want 0 (connection-level)", wf.StreamID)
	}

	if f, err = fr.ReadFrame(); err != io.EOF {
		t.Fatalf("frame after WINDOW_UPDATE = (%T, %v), want io.EOF (no PRIORITY frames)", f, err)
	}
}

func TestWritePrefaceWritesPriorityFramesInOrder(t *testing.T) {
	s := Http2FrameSettings{
		PriorityFrames: []PriorityFrame{
			{StreamID: 3, PriorityParam: PriorityParam{StreamDep: 0, Weight: 200}},
			{StreamID: 5, PriorityParam: PriorityParam{StreamDep: 3, Weight: 100}},
		},
	}
	var buf bytes.Buffer
	if err := s.WritePreface(&buf); err != nil {
		t.Fatalf("WritePreface: %v", err)
	}
	fr := http2.NewFramer(nil, bytes.NewReader(buf.Bytes()[len(http2.ClientPreface):]))

	// No settings fields set, but an (empty) SETTINGS frame is still
	// written, matching the always-present frame in WritePreface's order.
	if _, err := fr.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame(settings): %v", err)
	}

	first, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame(priority 1): %v", err)
	}
	pf1, ok := first.(*http2.PriorityFrame)
	if !ok || pf1.StreamID != 3 || pf1.PriorityParam.Weight != 200 {
		t.Fatalf("first priority frame = %+v, want stream 3 weight 200", first)
	}

	second, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame(priority 2): %v", err)
	}
	pf2, ok := second.(*http2.PriorityFrame)
	if !ok || pf2.StreamID != 5 || pf2.PriorityParam.StreamDep != 3 {
		t.Fatalf("second priority frame = %+v, want stream 5 dep 3", second)
	}
}
