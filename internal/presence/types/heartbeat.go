package types

type HeartbeatRequest struct {
	ScannerID       string `json:"scanner_id"`
	FirmwareVersion string `json:"firmware_version,omitempty"`
	UptimeSeconds   uint64 `json:"uptime_s,omitempty"`
	IP              string `json:"ip,omitempty"`
}

type HeartbeatResponse struct {
	OK         bool   `json:"ok"`
	ScannerID  string `json:"scanner_id"`
	ServerTime string `json:"server_time"`
}
