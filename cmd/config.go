package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort   int
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ResponseWindow     time.Duration
	SweepInterval      time.Duration
	SweepBatchSize     int
	DispatchRetryEvery time.Duration

	KafkaBrokers      []string
	KafkaCourierTopic string
	KafkaOrderTopic   string

	OTLPEndpoint string
	OTLPInsecure bool
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads configuration in order: envFile (if present), the
// environment, then command line flags. An empty envFile skips the file.
func LoadConfig(args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	cfg := Config{
		HTTPPort:          envInt("HTTP_PORT", 8080, &errs),
		DBHost:            envString("DB_HOST", "localhost"),
		DBPort:            envString("DB_PORT", "5432"),
		DBUser:            envString("DB_USER", "postgres"),
		DBPassword:        envString("DB_PASSWORD", ""),
		DBName:            envString("DB_NAME", "dispatch"),
		DBSslMode:         envString("DB_SSLMODE", "disable"),
		SweepBatchSize:    envInt("ASSIGNMENT_SWEEP_BATCH_SIZE", 100, &errs),
		KafkaCourierTopic: envString("KAFKA_COURIER_TOPIC", "courier-notifications"),
		KafkaOrderTopic:   envString("KAFKA_ORDER_TOPIC", "order-status"),
		OTLPEndpoint:      envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envString("OTEL_EXPORTER_OTLP_INSECURE", "") == "true",
	}
	windowMinutes := envInt("ASSIGNMENT_RESPONSE_WINDOW_MINUTES", 2, &errs)
	sweepSeconds := envInt("ASSIGNMENT_SWEEP_INTERVAL_SECONDS", 30, &errs)
	retrySeconds := envInt("DISPATCH_RETRY_INTERVAL_SECONDS", 15, &errs)
	brokers := envString("KAFKA_BROKERS", "")
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.IntVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	flags.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "database host")
	flags.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "database port")
	flags.StringVar(&cfg.DBName, "db-name", cfg.DBName, "database name")
	flags.IntVar(&windowMinutes, "response-window", windowMinutes, "minutes a courier has to answer an offer")
	flags.IntVar(&sweepSeconds, "sweep-interval", sweepSeconds, "seconds between timeout sweeps")
	flags.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "assignments expired per sweep")
	flags.IntVar(&retrySeconds, "retry-interval", retrySeconds, "seconds between dispatch retries for waiting orders")
	flags.StringVar(&brokers, "kafka-brokers", brokers, "comma separated Kafka brokers, empty logs notifications instead")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ResponseWindow = time.Duration(windowMinutes) * time.Minute
	cfg.SweepInterval = time.Duration(sweepSeconds) * time.Second
	cfg.DispatchRetryEvery = time.Duration(retrySeconds) * time.Second
	cfg.KafkaBrokers = splitList(brokers)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, fmt.Errorf("invalid port: %d", c.HTTPPort))
	}
	if c.ResponseWindow <= 0 {
		problems = append(problems, fmt.Errorf("response window must be positive, got %s", c.ResponseWindow))
	}
	if c.SweepInterval <= 0 {
		problems = append(problems, fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval))
	}
	if c.DispatchRetryEvery <= 0 {
		problems = append(problems, fmt.Errorf("retry interval must be positive, got %s", c.DispatchRetryEvery))
	}
	if c.SweepBatchSize < 1 || c.SweepBatchSize > 1000 {
		problems = append(problems, fmt.Errorf("sweep batch size must be within 1..1000, got %d", c.SweepBatchSize))
	}
	if len(c.KafkaBrokers) > 0 && (c.KafkaCourierTopic == "" || c.KafkaOrderTopic == "") {
		problems = append(problems, errors.New("kafka topics are required when brokers are set"))
	}
	return errors.Join(problems...)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
