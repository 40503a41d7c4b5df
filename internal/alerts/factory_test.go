package alerts

import (
	"testing"

	"github.com/soltixdb/insight/internal/config"
)

func TestNewPublisher_Memory(t *testing.T) {
	p, err := NewPublisher(config.AlertsConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("Failed to create memory publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	if _, ok := p.(*MemoryPublisher); !ok {
		t.Errorf("Expected *MemoryPublisher, got %T", p)
	}
}

func TestNewPublisher_UnsupportedType(t *testing.T) {
	_, err := NewPublisher(config.AlertsConfig{Type: "rabbitmq"})
	if err == nil {
		t.Fatal("Expected error for unsupported type")
	}
}

func TestNewPublisher_KafkaRequiresBrokers(t *testing.T) {
	_, err := NewPublisher(config.AlertsConfig{Type: "kafka"})
	if err == nil {
		t.Fatal("Expected error when kafka brokers are missing")
	}
}

func TestNewPublisher_CaseInsensitive(t *testing.T) {
	p, err := NewPublisher(config.AlertsConfig{Type: "MEMORY"})
	if err != nil {
		t.Fatalf("Type should be case insensitive: %v", err)
	}
	_ = p.Close()
}
