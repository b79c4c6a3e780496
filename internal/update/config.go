package update

import (
	"os"
	"strings"
)

// RuntimeConfig selects the store variant and its endpoints. A non-empty
// APIURL switches from the local file store to the remote one.
type RuntimeConfig struct {
	DataFile   string
	APIURL     string
	DBPath     string
	ListenAddr string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataFile:   "todos.json",
		APIURL:     "",
		DBPath:     "todoloop.db",
		ListenAddr: ":8080",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOLOOP_DATA_FILE"); ok {
		cfg.DataFile = v
	}
	if v, ok := getEnvString("TODOLOOP_API_URL"); ok {
		cfg.APIURL = v
	}
	if v, ok := getEnvString("TODOLOOP_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODOLOOP_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
