package domain

// Kind classifies why a check cycle produced a notification.
type Kind string

const (
	KindTransport         Kind = "transport"
	KindClientStatus      Kind = "client_status"
	KindServerStatus      Kind = "server_status"
	KindMalformedMetadata Kind = "malformed_metadata"
	KindBodyRead          Kind = "body_read"
	KindSchemaMismatch    Kind = "schema_mismatch"
	KindStockSignal       Kind = "stock_signal"
	KindBaselineStale     Kind = "baseline_stale"
)

// Notification is a single-use alert produced by one check cycle.
// Fatal notifications stop polling once they have been delivered.
type Notification struct {
	Kind  Kind
	Body  string
	Fatal bool
}

func Transient(kind Kind, body string) *Notification {
	return &Notification{Kind: kind, Body: body}
}

func Fatal(kind Kind, body string) *Notification {
	return &Notification{Kind: kind, Body: body, Fatal: true}
}
