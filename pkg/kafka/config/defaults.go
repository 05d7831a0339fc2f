package kafka_config

import "time"

const (
	// No brokers means events are not published at all.
	DefaultKafkaBrokers = ""

	DefaultCalendarTopic = "studiodesk.calendar.events"
	DefaultDLQTopic      = "studiodesk.calendar.events.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	// Empty means one group per host, so every instance sees every event.
	DefaultConsumerGroup      = ""
	DefaultConsumerMaxRetries = 3
	DefaultConsumerMaxWait    = time.Second

	DefaultEnableMiddleware = true
)
