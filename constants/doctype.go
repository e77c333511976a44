package constants

// DocumentType is one of the closed classification labels the language
// model may assign to a document.
type DocumentType string

const (
	LabRequisition      DocumentType = "lab_requisition"
	LabReport           DocumentType = "lab_report"
	PrescriptionOrder   DocumentType = "prescription_order"
	PatientRegistration DocumentType = "patient_registration"
	TestResults         DocumentType = "test_results"
	ReferralForm        DocumentType = "referral_form"
	MedicalHistory      DocumentType = "medical_history"
	BillingStatement    DocumentType = "billing_statement"
	AppointmentForm     DocumentType = "appointment_form"

	InsuranceVerification DocumentType = "insurance_verification"
	InsurancePriorAuth    DocumentType = "insurance_prior_auth"
	InsuranceClaim        DocumentType = "insurance_claim"
	InsuranceEOB          DocumentType = "insurance_eob"
	InsuranceCard         DocumentType = "insurance_card"
	InsuranceAppeal       DocumentType = "insurance_appeal"
	InsuranceEnrollment   DocumentType = "insurance_enrollment"
	InsuranceDenial       DocumentType = "insurance_denial"
	InsurancePolicy       DocumentType = "insurance_policy"

	OtherDocument DocumentType = "other"
)

var allDocumentTypes = []DocumentType{
	LabRequisition,
	LabReport,
	PrescriptionOrder,
	PatientRegistration,
	TestResults,
	ReferralForm,
	MedicalHistory,
	BillingStatement,
	AppointmentForm,
	InsuranceVerification,
	InsurancePriorAuth,
	InsuranceClaim,
	InsuranceEOB,
	InsuranceCard,
	InsuranceAppeal,
	InsuranceEnrollment,
	InsuranceDenial,
	InsurancePolicy,
	OtherDocument,
}

// DocumentTypeStrings returns the closed label set as plain strings,
// in prompt/schema order.
func DocumentTypeStrings() []string {
	result := make([]string, len(allDocumentTypes))
	for i, t := range allDocumentTypes {
		result[i] = string(t)
	}
	return result
}

// ExtractedFieldKeys is the closed set of field names the extraction
// prompt asks for. Extractors must emit every key, with null for
// anything they cannot find, never omitting a key.
var ExtractedFieldKeys = []string{
	// patient information
	"firstName",
	"lastName",
	"dateOfBirth",
	"patientPhoneNumber",
	"patientStreetAddress",
	"patientAddressCity",
	"patientAddressState",
	"patientAddressZip",
	"sex",
	// insurance information
	"insuranceId",
	"insuranceGroupNumber",
	"insuranceCompany",
	"policyNumber",
	"planName",
	"effectiveDate",
	"expirationDate",
	"copay",
	"deductible",
	"claimNumber",
	// medical information
	"physicianName",
	"physicianPhone",
	"facilityName",
	"testRequested",
	"diagnosisCode",
	"procedureCode",
	"urgentStatus",
	"dateOfService",
	"authorizationNumber",
	// financial information
	"totalAmount",
	"allowedAmount",
	"paidAmount",
	"patientResponsibility",
}
