package cmd

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Config is read from the environment by github.com/caarlos0/env.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"shipping"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer    string        `env:"JWT_ISSUER"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	TrackRateLimit  int           `env:"TRACK_RATE_LIMIT" envDefault:"60"`
	TrackRateWindow time.Duration `env:"TRACK_RATE_WINDOW" envDefault:"1m"`

	KafkaHost                 []string `env:"KAFKA_HOST" envSeparator:","`
	KafkaShipmentChangedTopic string   `env:"KAFKA_SHIPMENT_CHANGED_TOPIC" envDefault:"shipment.status-changed"`

	OutboxRelaySchedule string `env:"OUTBOX_RELAY_SCHEDULE" envDefault:"*/5 * * * * *"`
	OutboxBatchSize     int    `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	LedgerAuditSchedule string `env:"LEDGER_AUDIT_SCHEDULE" envDefault:"0 */5 * * * *"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// DSN is the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, quoteDSNValue(c.DBPassword), c.DBName, c.DBSslMode,
	)
}

// URL is the postgres:// form of DSN, used for logging with the password
// redacted.
func (c Config) URL() *url.URL {
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
}

func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	escaped := make([]rune, 0, len(v))
	needsQuotes := false
	for _, r := range v {
		switch r {
		case '\'', '\\':
			escaped = append(escaped, '\\', r)
			needsQuotes = true
		case ' ':
			escaped = append(escaped, r)
			needsQuotes = true
		default:
			escaped = append(escaped, r)
		}
	}
	if !needsQuotes {
		return v
	}
	return "'" + string(escaped) + "'"
}
