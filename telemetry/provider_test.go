package telemetry_test

import (
	"context"
	"testing"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/telemetry"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.Telemetry{
		Enabled:  false,
		Endpoint: "http://localhost:4318",
	}, "session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.Telemetry{Enabled: true}, "session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens
	shutdown, err := telemetry.Setup(context.Background(), config.Telemetry{
		Enabled:  true,
		Endpoint: "http://192.0.2.1:4318",
		Service:  "stagecore-test",
	}, "session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
