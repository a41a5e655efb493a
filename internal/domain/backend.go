package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Backend identifies a supported ingestion backend. Each value carries its
// own endpoint path and query-parameter conventions; the set is closed so
// unsupported names are rejected at configuration time, not at send time.
type Backend int

const (
	// BackendQuestDB targets QuestDB's influx line protocol endpoint.
	BackendQuestDB Backend = iota

	// BackendInfluxDB targets InfluxDB 3's line protocol write endpoint.
	BackendInfluxDB
)

// writeDatabase is the database targeted by the InfluxDB write convention.
// It is part of the fixed wire contract with the backend.
const writeDatabase = "sensors"

// ParseBackend maps a backend name from configuration to its Backend value.
// Unknown names return ErrUnknownBackend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "questdb":
		return BackendQuestDB, nil
	case "influxdb":
		return BackendInfluxDB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// String returns the configuration name of the backend.
func (b Backend) String() string {
	switch b {
	case BackendQuestDB:
		return "questdb"
	case BackendInfluxDB:
		return "influxdb"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// WriteURL returns the fully qualified write endpoint for the given base
// host. Trailing path separators on the host are trimmed before the
// backend-specific suffix is appended.
func (b Backend) WriteURL(host string) string {
	host = strings.TrimRight(host, "/")
	switch b {
	case BackendInfluxDB:
		return host + "/api/v3/write_lp?db=" + writeDatabase + "&precision=auto"
	default:
		return host + "/write"
	}
}

// QueryURL returns the SQL query endpoint for the given base host and query
// text. The read path is thin glue: one request, response body passed
// through verbatim.
func (b Backend) QueryURL(host, query string) string {
	host = strings.TrimRight(host, "/")
	q := url.QueryEscape(query)
	switch b {
	case BackendInfluxDB:
		return host + "/api/v3/query_sql?db=" + writeDatabase + "&q=" + q + "&format=json"
	default:
		return host + "/exec?query=" + q
	}
}
