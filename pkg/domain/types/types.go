package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	Channel     string
	Environment string
	Email       string
	TestID      string
	RequestID   string
	ScanID      string
	TokenHandle string
)

const (
	ChannelGitHub Channel = "github"
)

func (x Channel) String() string     { return string(x) }
func (x Environment) String() string { return string(x) }
func (x ScanID) String() string      { return string(x) }
func (x TestID) String() string      { return string(x) }

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

// scanIDNamespace scopes UUIDv5 scan IDs derived from comparison identifiers.
var scanIDNamespace = uuid.MustParse("6f1c2b0e-7d1f-4a4e-9b8e-3c5a1f0d2e77")

// NewScanID derives a stable scan ID from a comparison identifier, so that
// every backend assigns the same ID to the same push.
func NewScanID(compare string) ScanID {
	return ScanID(uuid.NewSHA1(scanIDNamespace, []byte(compare)).String())
}

func NewTokenHandle() TokenHandle {
	return TokenHandle(uuid.NewString())
}

// SessionID is the test provider's session identifier of a subscriber.
type SessionID string

func (x SessionID) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x SessionID) String() string {
	return "***********"
}

// ProviderToken is the ephemeral source-control token handed out by the
// identity API. It is only held in memory for the duration of one run.
type ProviderToken string

func (x ProviderToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x ProviderToken) String() string {
	return "***********"
}
