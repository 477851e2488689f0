package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterPackageRequest is the manifest-intake payload.
type RegisterPackageRequest struct {
	Description string `json:"description"`
}

// RegisterPackageResponse returns the tracking id assigned at intake.
type RegisterPackageResponse struct {
	PackageID string `json:"packageId"`
}

// LatestStatusResponse is the resolved current status of one package.
type LatestStatusResponse struct {
	PackageID   string    `json:"packageId"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `json:"updatedBy"`
}

// HistoryEntryResponse is one status log entry, part of a package's audit
// trail.
type HistoryEntryResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// MarkMissingRequest carries the mandatory reason for a missing report.
type MarkMissingRequest struct {
	Description string `json:"description"`
}

// CreateShipmentRequest groups packages onto a new transport leg.
type CreateShipmentRequest struct {
	Type       string   `json:"type"`
	PackageIDs []string `json:"packageIds"`
}

// CreateShipmentResponse returns the number assigned to the new shipment.
type CreateShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
}

// ScanRequest is one scan submission: the batch of scanned ids plus the ids
// already accepted earlier in this scanning session.
type ScanRequest struct {
	PackageStatus     string   `json:"packageStatus"`
	MemberStatus      string   `json:"memberStatus"`
	ScannedIDs        []string `json:"scannedIds"`
	SessionScannedIDs []string `json:"sessionScannedIds"`
	Description       string   `json:"description"`
}

// ScanRejectionResponse is one rejected scan id with its reason.
type ScanRejectionResponse struct {
	PackageID string `json:"packageId"`
	Reason    string `json:"reason"`
}

// ScanResponse carries the per-id verdicts of one scan submission.
type ScanResponse struct {
	Accepted []string                `json:"accepted"`
	Rejected []ScanRejectionResponse `json:"rejected"`
}

// ShipmentPackageStatusResponse is one member package's resolved state on
// the scan screen.
type ShipmentPackageStatusResponse struct {
	PackageID    string    `json:"packageId"`
	Status       string    `json:"status"`
	MemberStatus string    `json:"memberStatus"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanAdvanceResponse is the reconciler gate verdict.
type CanAdvanceResponse struct {
	Allowed            bool     `json:"allowed"`
	BlockingPackageIDs []string `json:"blockingPackageIds"`
}

// AdvanceShipmentRequest asks to advance a shipment to the target status.
type AdvanceShipmentRequest struct {
	TargetStatus string `json:"targetStatus"`
	Description  string `json:"description"`
}
