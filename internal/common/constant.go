package common

// RequestIDHeaderName carries the per-request correlation ID on HTTP
// requests and responses.
const RequestIDHeaderName = "X-Request-ID"

// HealthServiceName is the gRPC health service name reported for the
// entries API.
const HealthServiceName = "expenses.Entries"
