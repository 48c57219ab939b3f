package nativehost

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
)

type fakeEngine struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeEngine) AddDownload(ctx context.Context, msg relay.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, msg.URL)
	return f.err
}

func frameMessage(t *testing.T, url string) []byte {
	t.Helper()

	payload, err := relay.NewMessage(url).Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var buf bytes.Buffer
	if err := relay.WriteFrame(&buf, payload); err != nil {
		t.Fatalf("write frame failed: %v", err)
	}
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBridgeForwardsFramedURLs(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(frameMessage(t, "https://x/a.bin"))
	stream.Write(frameMessage(t, "https://x/b.bin"))

	engine := &fakeEngine{}
	bridge := New(engine, WithLogger(discardLogger()))

	if err := bridge.Run(context.Background(), &stream); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(engine.urls) != 2 {
		t.Fatalf("forwarded urls = %d, want 2", len(engine.urls))
	}
	if engine.urls[0] != "https://x/a.bin" || engine.urls[1] != "https://x/b.bin" {
		t.Errorf("forwarded urls = %v, want in-order hand-off", engine.urls)
	}
}

func TestBridgeCleanEOF(t *testing.T) {
	bridge := New(&fakeEngine{}, WithLogger(discardLogger()))
	if err := bridge.Run(context.Background(), bytes.NewReader(nil)); err != nil {
		t.Fatalf("expected nil error on clean EOF, got %v", err)
	}
}

func TestBridgeContinuesAfterEngineFailure(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(frameMessage(t, "https://x/a.bin"))
	stream.Write(frameMessage(t, "https://x/b.bin"))

	engine := &fakeEngine{err: errors.New("engine not running")}
	bridge := New(engine, WithLogger(discardLogger()))

	if err := bridge.Run(context.Background(), &stream); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(engine.urls) != 2 {
		t.Errorf("hand-off attempts = %d, want 2 (port stays open)", len(engine.urls))
	}
}

func TestBridgeSkipsUndecodableMessage(t *testing.T) {
	var stream bytes.Buffer
	if err := relay.WriteFrame(&stream, []byte("not json")); err != nil {
		t.Fatalf("write frame failed: %v", err)
	}
	stream.Write(frameMessage(t, "https://x/a.bin"))

	engine := &fakeEngine{}
	bridge := New(engine, WithLogger(discardLogger()))

	if err := bridge.Run(context.Background(), &stream); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(engine.urls) != 1 || engine.urls[0] != "https://x/a.bin" {
		t.Errorf("forwarded urls = %v, want only the decodable message", engine.urls)
	}
}

func TestBridgeTruncatedStreamIsError(t *testing.T) {
	// A truncated frame means the protocol stream is broken.
	stream := bytes.NewReader([]byte{0x10, 0x00, 0x00, 0x00, 'p', 'a', 'r', 't'})

	bridge := New(&fakeEngine{}, WithLogger(discardLogger()))
	if err := bridge.Run(context.Background(), stream); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}
