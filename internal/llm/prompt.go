package llm

import (
	"strings"

	"github.com/joseph-ayodele/medintake/constants"
)

// Short definitions for each classification label, keyed by the closed
// set in constants. The prompt enumerates these so the model never
// invents a category.
var documentTypeDefs = map[string]string{
	"lab_requisition":       "Laboratory test orders, sample collection requests, blood draw orders, specimen collection forms",
	"lab_report":            "Laboratory test results, blood work, urine tests, pathology reports, completed lab findings",
	"prescription_order":    "Medication prescriptions, pharmacy orders, drug requests, medication orders",
	"patient_registration":  "New patient forms, demographic information, intake forms",
	"test_results":          "Radiology, imaging, diagnostic test results, scan reports",
	"referral_form":         "Physician referrals, specialist consultations, transfer requests",
	"medical_history":       "Patient history, medical records, past medical information",
	"billing_statement":     "Medical bills, statements, invoices, payment records",
	"appointment_form":      "Scheduling requests, appointment confirmations",
	"insurance_verification": "Insurance eligibility verification, coverage verification",
	"insurance_prior_auth":  "Prior authorization requests, pre-approval forms",
	"insurance_claim":       "Insurance claims, claim forms, reimbursement requests",
	"insurance_eob":         "Explanation of Benefits, EOB statements, payment explanations",
	"insurance_card":        "Insurance card copies, member ID cards",
	"insurance_appeal":      "Appeals, grievances, dispute forms",
	"insurance_enrollment":  "Plan enrollment, membership applications",
	"insurance_denial":      "Coverage denials, rejection letters",
	"insurance_policy":      "Policy documents, coverage summaries, plan details",
	"other":                 "If none of the above categories fit clearly",
}

// Field descriptions in prompt order, grouped the way the template
// presents them.
var fieldGroups = []struct {
	heading string
	fields  [][2]string
}{
	{"PATIENT INFORMATION", [][2]string{
		{"firstName", "Patient's first name"},
		{"lastName", "Patient's last name"},
		{"dateOfBirth", "Date of birth (MM/DD/YYYY format)"},
		{"patientPhoneNumber", "Patient's phone number"},
		{"patientStreetAddress", "Street address only (no city/state/zip)"},
		{"patientAddressCity", "City name only"},
		{"patientAddressState", "State abbreviation"},
		{"patientAddressZip", "Zip code"},
		{"sex", "Biological Sex (M or F)"},
	}},
	{"INSURANCE INFORMATION", [][2]string{
		{"insuranceId", "Insurance ID or member number"},
		{"insuranceGroupNumber", "Insurance group number"},
		{"insuranceCompany", "Insurance company name"},
		{"policyNumber", "Policy number (if different from member ID)"},
		{"planName", "Insurance plan name or type"},
		{"effectiveDate", "Insurance effective date"},
		{"expirationDate", "Insurance expiration date"},
		{"copay", "Copayment amount"},
		{"deductible", "Deductible amount"},
		{"claimNumber", "Claim number (for claims/EOBs)"},
	}},
	{"MEDICAL INFORMATION", [][2]string{
		{"physicianName", "Ordering/referring physician name"},
		{"physicianPhone", "Physician phone number"},
		{"facilityName", "Medical facility or hospital name"},
		{"testRequested", "Type of test or procedure requested"},
		{"diagnosisCode", "ICD code or diagnosis"},
		{"procedureCode", "CPT or procedure code"},
		{"urgentStatus", "Whether marked as urgent/STAT"},
		{"dateOfService", "Date of service or collection date"},
		{"authorizationNumber", "Prior authorization number"},
	}},
	{"FINANCIAL INFORMATION", [][2]string{
		{"totalAmount", "Total amount charged"},
		{"allowedAmount", "Insurance allowed amount"},
		{"paidAmount", "Amount paid by insurance"},
		{"patientResponsibility", "Amount owed by patient"},
	}},
}

// BuildClassificationPrompt renders the shared instruction template
// around the extracted text. The template enumerates the complete
// closed set of categories and field keys; extractors must emit null
// for anything they cannot find, never omit a key.
func BuildClassificationPrompt(extractedText string) string {
	var b strings.Builder
	b.WriteString("You are an expert at analyzing and classifying medical documents. ")
	b.WriteString("Please analyze this medical document text and provide both classification and field extraction. ")
	b.WriteString("Ensure to return the data in a valid JSON format.\n\n")

	b.WriteString("DOCUMENT CLASSIFICATION:\nFirst, classify this document into one of these categories:\n")
	writeTypeGroup(&b, "MEDICAL DOCUMENTS", []string{
		"lab_requisition", "lab_report", "prescription_order", "patient_registration",
		"test_results", "referral_form", "medical_history", "billing_statement", "appointment_form",
	})
	writeTypeGroup(&b, "INSURANCE DOCUMENTS", []string{
		"insurance_verification", "insurance_prior_auth", "insurance_claim", "insurance_eob",
		"insurance_card", "insurance_appeal", "insurance_enrollment", "insurance_denial", "insurance_policy",
	})
	writeTypeGroup(&b, "GENERAL", []string{"other"})

	b.WriteString("\nREQUIRED FIELDS TO EXTRACT:\n")
	for _, g := range fieldGroups {
		b.WriteString("\n" + g.heading + ":\n")
		for _, f := range g.fields {
			b.WriteString("- " + f[0] + ": " + f[1] + "\n")
		}
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("1. Analyze the extracted text carefully to understand the document's purpose and content\n")
	b.WriteString("2. Classify the document type based on its primary function and content:\n")
	b.WriteString("   - Look for \"sample collection\", \"blood draw\", \"specimen\" -> lab_requisition\n")
	b.WriteString("   - Look for \"test results\", \"findings\", \"values\" -> lab_report\n")
	b.WriteString("   - Look for \"medication\", \"prescription\", \"dispense\", \"pharmacy\" -> prescription_order\n")
	b.WriteString("3. Extract exact values as they appear in the text\n")
	b.WriteString("4. If a field is not found, set it to null\n")
	b.WriteString("5. For dates, convert to MM/DD/YYYY format if possible\n")
	b.WriteString("6. If unable to determine the value for a field, set it to null\n")
	b.WriteString("7. For sex, use the Biological Sex checkbox value, if M is checked, set it to M, if F is checked, set it to F, if neither is checked, set it to null\n")

	b.WriteString("\nHere is the extracted text from the document:\n")
	b.WriteString(extractedText)

	b.WriteString("\n\nReturn ONLY a valid JSON object with this structure:\n")
	b.WriteString(responseSkeleton())
	b.WriteString(" JSON:")
	return b.String()
}

func writeTypeGroup(b *strings.Builder, heading string, types []string) {
	b.WriteString("\n" + heading + ":\n")
	for _, t := range types {
		b.WriteString("- \"" + t + "\": " + documentTypeDefs[t] + "\n")
	}
}

func responseSkeleton() string {
	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("  \"documentClassification\": {\n")
	b.WriteString("    \"primaryType\": \"category_name\",\n")
	b.WriteString("    \"confidence\": 0.95,\n")
	b.WriteString("    \"reasoning\": \"Brief explanation of why this classification was chosen\"\n")
	b.WriteString("  },\n")
	b.WriteString("  \"extractedFields\": {\n")
	keys := constants.ExtractedFieldKeys
	for i, k := range keys {
		hint := "value or null"
		switch k {
		case "dateOfBirth", "effectiveDate", "expirationDate", "dateOfService":
			hint = "MM/DD/YYYY or null"
		case "sex":
			hint = "M, F, or null"
		}
		b.WriteString("    \"" + k + "\": \"" + hint + "\"")
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}")
	return b.String()
}
