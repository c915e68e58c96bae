package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/userfed/internal/flagx"
	"github.com/dmitrijs2005/userfed/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "5m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	DBHost                string         `json:"db_host"`
	DBPort                string         `json:"db_port"`
	DBName                string         `json:"db_name"`
	DBUser                string         `json:"db_user"`
	DBPassword            string         `json:"db_password"`
	DBSSLMode             string         `json:"db_sslmode"`
	ProviderID            string         `json:"provider_id"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	RunMigrations         bool           `json:"run_migrations"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If neither flag is set, no file
// is loaded. Unreadable or invalid files panic: a config file that was
// explicitly asked for must be usable.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.DBHost = c.DBHost
	config.DBPort = c.DBPort
	config.DBName = c.DBName
	config.DBUser = c.DBUser
	config.DBPassword = c.DBPassword
	config.DBSSLMode = c.DBSSLMode
	config.ProviderID = c.ProviderID
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.RunMigrations = c.RunMigrations
}
