package constants

import "github.com/google/uuid"

// GuestUserID is used where an endpoint tolerates anonymous callers.
var GuestUserID = uuid.Nil

// Known service-request tables. Everything else sent to the
// create-service-request function is rejected.
const (
	TableTranslationRequests = "translation_requests"
	TableOtherLegalRequests  = "other_legal_requests"
	TableWakalaApplications  = "wakala_applications"
)

// Member number prefix, e.g. JCA-2026-0042.
const MemberNumberPrefix = "JCA"
