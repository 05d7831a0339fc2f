package kafka_config

import (
	"strings"
	"testing"
)

func TestLoad_NoBrokersDisablesPublishing(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg := Load()
	if cfg.Enabled() {
		t.Errorf("expected publishing to be disabled, brokers = %v", cfg.Brokers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled config should validate: %v", err)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")

	cfg := Load()
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "kafka-1:9092" || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"kafka:9092"},
		CalendarTopic:        "events",
		DLQTopic:             "events",
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"DLQTopic", "ProducerMaxAttempts", "ProducerCompression", "ProducerRequireAcks"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s:\n%s", want, err)
		}
	}
}

func TestGroupFor(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GroupFor("calendars"); !strings.HasPrefix(got, "calendars-") {
		t.Errorf("GroupFor() = %s, want a calendars- prefix", got)
	}

	cfg.ConsumerGroup = "shared"
	if got := cfg.GroupFor("calendars"); got != "shared" {
		t.Errorf("GroupFor() = %s, want shared", got)
	}
}
