package surge

import "encoding/json"

// ===== Shared API objects =====
//
// These types appear in several responses: deployment lists, revision
// metadata, the final info event of a publish, and the audit trail.

// URL is one address a deployment answers on.
type URL struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// DomainConfig holds the per-domain behavior toggles. The API leaves
// unset values null and their shapes vary by feature, so they are kept
// raw for callers that need them.
type DomainConfig struct {
	Force    json.RawMessage `json:"force,omitempty"`
	Redirect json.RawMessage `json:"redirect,omitempty"`
	CORS     json.RawMessage `json:"cors,omitempty"`
	HSTS     json.RawMessage `json:"hsts,omitempty"`
	TTL      json.RawMessage `json:"ttl,omitempty"`
	PDF      *bool           `json:"pdf,omitempty"`
}

// Cert describes one TLS certificate attached to a domain.
type Cert struct {
	Subject         string   `json:"subject"`
	Issuer          string   `json:"issuer"`
	NotBefore       string   `json:"notBefore"`
	NotAfter        string   `json:"notAfter"`
	ExpInDays       int      `json:"expInDays"`
	SubjectAltNames []string `json:"subjectAltNames"`
	CertName        string   `json:"certName"`
	AutoRenew       bool     `json:"autoRenew"`
}

// Instance is one edge node serving a deployment.
type Instance struct {
	Type              string `json:"type"`
	Provider          string `json:"provider,omitempty"`
	Domain            string `json:"domain"`
	Location          string `json:"location"`
	Status            string `json:"status"`
	StatusColor       string `json:"statusColor"`
	Confirmation      string `json:"confirmation"`
	ConfirmationColor string `json:"confirmationColor"`
	IP                string `json:"ip"`
	Info              string `json:"info"`
}

// Metadata describes one revision of a deployment: who published it,
// from where, and what it contains.
type Metadata struct {
	Rev              int64           `json:"rev"`
	Cmd              string          `json:"cmd"`
	Email            string          `json:"email"`
	Platform         string          `json:"platform"`
	CLIVersion       string          `json:"cliVersion"`
	Output           json.RawMessage `json:"output,omitempty"`
	Config           DomainConfig    `json:"config"`
	Message          string          `json:"message,omitempty"`
	BuildTime        string          `json:"buildTime,omitempty"`
	IP               string          `json:"ip"`
	Current          bool            `json:"current,omitempty"`
	Preview          string          `json:"preview,omitempty"`
	PublicFileCount  int64           `json:"publicFileCount"`
	PublicTotalSize  int64           `json:"publicTotalSize"`
	PrivateFileCount int64           `json:"privateFileCount"`
	PrivateTotalSize int64           `json:"privateTotalSize"`
	PrivateFileList  []string        `json:"privateFileList,omitempty"`
	UploadStartTime  int64           `json:"uploadStartTime"`
	UploadEndTime    int64           `json:"uploadEndTime"`
	UploadDuration   float64         `json:"uploadDuration"`
	TimeAgoInWords   string          `json:"timeAgoInWords,omitempty"`
}

// Deployment is one row of the account-wide deployment list.
type Deployment struct {
	Domain   string `json:"domain"`
	PlanName string `json:"planName"`
	Metadata
}

// ManifestEntry describes one published file.
type ManifestEntry struct {
	Size      int64  `json:"size"`
	MD5Sum    string `json:"md5sum"`
	SHA256Sum string `json:"sha256sum"`
}

// Plan is the subscription plan attached to an account.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   string   `json:"amount"`
	Friendly string   `json:"friendly"`
	Dummy    bool     `json:"dummy"`
	Current  bool     `json:"current"`
	Ext      string   `json:"ext"`
	Perks    []string `json:"perks"`
	Comped   bool     `json:"comped"`
}

// ===== Analytics =====

// Series is a total plus per-interval samples for one metric.
type Series struct {
	Total   int64   `json:"t"`
	Samples []int64 `json:"s"`
}

// Traffic breaks down request volume.
type Traffic struct {
	Connections Series `json:"connections"`
	Visits      Series `json:"visits"`
	Uniques     Series `json:"uniques"`
}

// Bandwidth breaks down bytes served.
type Bandwidth struct {
	All     Series `json:"all"`
	Body    Series `json:"body"`
	Headers Series `json:"headers"`
}

// CacheActivity counts edge cache hits and misses.
type CacheActivity struct {
	Hit  Series `json:"hit"`
	Miss Series `json:"miss"`
}

// EncryptionActivity counts connections by TLS handling.
type EncryptionActivity struct {
	Encrypted           Series `json:"cE"`
	Unencrypted         Series `json:"cU"`
	RedirectEncrypted   Series `json:"cRe"`
	RedirectUnencrypted Series `json:"cRu"`
}

// Datacenter is one edge location's share of traffic.
type Datacenter struct {
	Total   int64   `json:"t"`
	Samples []int64 `json:"s"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// Analytics is the traffic report for one domain. Breakdown maps
// (source, device, and so on) are keyed by day; their value shapes
// vary and are kept raw.
type Analytics struct {
	NormalizedAt        string                       `json:"normalizedAt"`
	Version             string                       `json:"version"`
	Domain              string                       `json:"domain"`
	Range               []string                     `json:"range"`
	Traffic             Traffic                      `json:"traffic"`
	Encryption          EncryptionActivity           `json:"encryption"`
	Bandwidth           Bandwidth                    `json:"bandwidth"`
	Cache               CacheActivity                `json:"cache"`
	Source              map[string][]json.RawMessage `json:"source"`
	Device              map[string][]json.RawMessage `json:"device"`
	OS                  map[string][]json.RawMessage `json:"os"`
	Browser             map[string][]json.RawMessage `json:"browser"`
	Success             map[string][]json.RawMessage `json:"success"`
	Fail                map[string][]json.RawMessage `json:"fail"`
	Redirect            map[string][]json.RawMessage `json:"redirect"`
	Load                map[string][]json.RawMessage `json:"load"`
	Datacenters         map[string]Datacenter        `json:"datacenters"`
	NormalizedAtInWords string                       `json:"normalizedAtInWords"`
}

// AuditEntry is one revision's record in a domain's audit trail,
// keyed by revision identifier. The certificate blob is a raw X.509
// dump whose fields vary by issuer.
type AuditEntry struct {
	Rev              int64                    `json:"rev"`
	PublicFileCount  int64                    `json:"publicFileCount"`
	PublicTotalSize  int64                    `json:"publicTotalSize"`
	PrivateFileCount int64                    `json:"privateFileCount"`
	PrivateTotalSize int64                    `json:"privateTotalSize"`
	PrivateFileList  []string                 `json:"privateFileList,omitempty"`
	Manifest         map[string]ManifestEntry `json:"manifest"`
	Cert             json.RawMessage          `json:"cert,omitempty"`
}
