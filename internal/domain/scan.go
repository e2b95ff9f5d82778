package domain

type ScanOutcome string

const (
	// ScanIgnored: empty payload or a repeat read inside the dedupe window.
	ScanIgnored ScanOutcome = "ignored"
	// ScanNoMatch: no roster record carries the scanned identity.
	ScanNoMatch ScanOutcome = "no-match"
	// ScanAlreadyCheckedIn: matched a record that is already checked in.
	ScanAlreadyCheckedIn ScanOutcome = "already-checked-in"
	// ScanCheckedIn: matched a pending record and checked it in.
	ScanCheckedIn ScanOutcome = "checked-in"
	// ScanWriteFailed: matched a pending record but the check-in write failed.
	ScanWriteFailed ScanOutcome = "write-failed"
)

type ScanResult struct {
	Outcome      ScanOutcome   `json:"outcome"`
	Registration *Registration `json:"registration,omitempty"`
}
