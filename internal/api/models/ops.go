package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      Timestamp        `json:"time"`
	Cache     CacheStatus      `json:"cache"`
	Providers []ProviderStatus `json:"providers"`
}

// CacheStatus reports the state of the record cache.
type CacheStatus struct {
	Entries      int    `json:"entries"`
	FreshEntries int    `json:"freshEntries"`
	TTL          string `json:"ttl"`
}

// ProviderStatus represents the status of an external provider.
type ProviderStatus struct {
	Provider string       `json:"provider"`
	Status   HealthStatus `json:"status"`
	Detail   *string      `json:"detail,omitempty"`
}
