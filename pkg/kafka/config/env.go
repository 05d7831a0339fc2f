package kafka_config

const (
	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvKafkaCalendarTopic = "KAFKA_CALENDAR_TOPIC"
	EnvKafkaDLQTopic      = "KAFKA_DLQ_TOPIC"

	EnvKafkaProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaProducerAsync        = "KAFKA_PRODUCER_ASYNC"

	EnvKafkaConsumerGroup      = "KAFKA_CONSUMER_GROUP"
	EnvKafkaConsumerMaxRetries = "KAFKA_CONSUMER_MAX_RETRIES"
	EnvKafkaConsumerMaxWait    = "KAFKA_CONSUMER_MAX_WAIT"

	EnvKafkaEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"
)
