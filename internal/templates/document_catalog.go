package templates

const (
	pathPolicyNumber = "insuranceInfo.policyNumber"
	pathPolicyType   = "insuranceInfo.policyType"
	pathPremium      = "insuranceInfo.premium"
	pathStartDate    = "insuranceInfo.startDate"
	pathEndDate      = "insuranceInfo.endDate"
	pathFullName     = "firstName,lastName"
	pathAddress      = "address.street,address.city,address.state,address.zipCode"
)

func documentCatalog() []DocumentTemplate {
	return []DocumentTemplate{
		{
			ID:          "auto-policy",
			Name:        "Auto Insurance Policy",
			Type:        DocumentTypePolicy,
			Description: "Standard auto insurance policy document",
			Fields: []DocumentField{
				{ID: "policyNumber", Label: "Policy Number", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyNumber},
				{ID: "customerName", Label: "Customer Name", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "customerEmail", Label: "Email Address", Type: FieldTypeText, Required: true, CustomerDataPath: "email"},
				{ID: "customerPhone", Label: "Phone Number", Type: FieldTypeText, Required: true, CustomerDataPath: "phone"},
				{ID: "customerAddress", Label: "Address", Type: FieldTypeText, Required: true, CustomerDataPath: pathAddress},
				{ID: "vehicleYear", Label: "Vehicle Year", Type: FieldTypeNumber, Required: true, Placeholder: "2024"},
				{ID: "vehicleMake", Label: "Vehicle Make", Type: FieldTypeText, Required: true, Placeholder: "Toyota"},
				{ID: "vehicleModel", Label: "Vehicle Model", Type: FieldTypeText, Required: true, Placeholder: "Camry"},
				{
					ID:       "coverage",
					Label:    "Coverage Type",
					Type:     FieldTypeSelect,
					Required: true,
					Options:  []string{"Liability Only", "Comprehensive", "Full Coverage"},
				},
				{ID: "premium", Label: "Annual Premium", Type: FieldTypeNumber, Required: true, CustomerDataPath: pathPremium},
				{ID: "startDate", Label: "Policy Start Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathStartDate},
				{ID: "endDate", Label: "Policy End Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathEndDate},
			},
		},
		{
			ID:          "home-policy",
			Name:        "Home Insurance Policy",
			Type:        DocumentTypePolicy,
			Description: "Standard home insurance policy document",
			Fields: []DocumentField{
				{ID: "policyNumber", Label: "Policy Number", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyNumber},
				{ID: "customerName", Label: "Customer Name", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "customerEmail", Label: "Email Address", Type: FieldTypeText, Required: true, CustomerDataPath: "email"},
				{ID: "propertyAddress", Label: "Property Address", Type: FieldTypeText, Required: true, CustomerDataPath: pathAddress},
				{ID: "propertyValue", Label: "Property Value", Type: FieldTypeNumber, Required: true, Placeholder: "250000"},
				{ID: "dwellingCoverage", Label: "Dwelling Coverage", Type: FieldTypeNumber, Required: true, Placeholder: "200000"},
				{ID: "personalProperty", Label: "Personal Property Coverage", Type: FieldTypeNumber, Required: true, Placeholder: "100000"},
				{ID: "premium", Label: "Annual Premium", Type: FieldTypeNumber, Required: true, CustomerDataPath: pathPremium},
				{ID: "startDate", Label: "Policy Start Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathStartDate},
				{ID: "endDate", Label: "Policy End Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathEndDate},
			},
		},
		{
			ID:          "claim-form",
			Name:        "Insurance Claim Form",
			Type:        DocumentTypeClaim,
			Description: "Standard insurance claim form",
			Fields: []DocumentField{
				{ID: "claimNumber", Label: "Claim Number", Type: FieldTypeText, Required: true, Placeholder: "CLM-2024-001"},
				{ID: "policyNumber", Label: "Policy Number", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyNumber},
				{ID: "customerName", Label: "Customer Name", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "incidentDate", Label: "Date of Incident", Type: FieldTypeDate, Required: true},
				{
					ID:          "incidentDescription",
					Label:       "Description of Incident",
					Type:        FieldTypeText,
					Required:    true,
					Placeholder: "Describe what happened...",
				},
				{ID: "damageAmount", Label: "Estimated Damage Amount", Type: FieldTypeNumber, Required: true, Placeholder: "5000"},
				{ID: "policeReport", Label: "Police Report Filed", Type: FieldTypeCheckbox},
			},
		},
		{
			ID:          "auto-quote",
			Name:        "Auto Insurance Quote",
			Type:        DocumentTypeQuote,
			Description: "Premium quote for a prospective auto policy",
			Fields: []DocumentField{
				{ID: "quoteNumber", Label: "Quote Number", Type: FieldTypeText, Required: true, Placeholder: "QTE-2024-001"},
				{ID: "customerName", Label: "Customer Name", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "customerEmail", Label: "Email Address", Type: FieldTypeText, Required: true, CustomerDataPath: "email"},
				{ID: "dateOfBirth", Label: "Date of Birth", Type: FieldTypeDate, Required: true, CustomerDataPath: "dateOfBirth"},
				{ID: "vehicleYear", Label: "Vehicle Year", Type: FieldTypeNumber, Required: true, Placeholder: "2024"},
				{ID: "vehicleMake", Label: "Vehicle Make", Type: FieldTypeText, Required: true, Placeholder: "Toyota"},
				{ID: "vehicleModel", Label: "Vehicle Model", Type: FieldTypeText, Required: true, Placeholder: "Camry"},
				{
					ID:       "coverage",
					Label:    "Coverage Type",
					Type:     FieldTypeSelect,
					Required: true,
					Options:  []string{"Liability Only", "Comprehensive", "Full Coverage"},
				},
				{ID: "quotedPremium", Label: "Quoted Annual Premium", Type: FieldTypeNumber, Required: true, Placeholder: "1200"},
				{ID: "validUntil", Label: "Quote Valid Until", Type: FieldTypeDate, Required: true},
				{ID: "multiPolicyDiscount", Label: "Multi-Policy Discount Applied", Type: FieldTypeCheckbox},
			},
		},
		{
			ID:          "policy-renewal",
			Name:        "Policy Renewal Notice",
			Type:        DocumentTypeRenewal,
			Description: "Renewal notice with updated term and premium",
			Fields: []DocumentField{
				{ID: "policyNumber", Label: "Policy Number", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyNumber},
				{ID: "customerName", Label: "Customer Name", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "policyType", Label: "Policy Type", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyType},
				{ID: "currentEndDate", Label: "Current Term Ends", Type: FieldTypeDate, Required: true, CustomerDataPath: pathEndDate},
				{ID: "currentPremium", Label: "Current Premium", Type: FieldTypeNumber, Required: true, CustomerDataPath: pathPremium},
				{ID: "renewalPremium", Label: "Renewal Premium", Type: FieldTypeNumber, Required: true, Placeholder: "1500"},
				{ID: "renewalStartDate", Label: "Renewal Term Starts", Type: FieldTypeDate, Required: true},
				{
					ID:       "paymentPlan",
					Label:    "Payment Plan",
					Type:     FieldTypeSelect,
					Required: true,
					Options:  []string{"Annual", "Semi-Annual", "Quarterly", "Monthly"},
				},
				{ID: "autoRenew", Label: "Automatic Renewal", Type: FieldTypeCheckbox},
			},
		},
		{
			ID:          "certificate-of-insurance",
			Name:        "Certificate of Insurance",
			Type:        DocumentTypeCertificate,
			Description: "Proof of coverage for a third party",
			Fields: []DocumentField{
				{ID: "certificateNumber", Label: "Certificate Number", Type: FieldTypeText, Required: true, Placeholder: "COI-2024-001"},
				{ID: "policyNumber", Label: "Policy Number", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyNumber},
				{ID: "insuredName", Label: "Insured", Type: FieldTypeText, Required: true, CustomerDataPath: pathFullName},
				{ID: "insuredAddress", Label: "Insured Address", Type: FieldTypeText, Required: true, CustomerDataPath: pathAddress},
				{ID: "policyType", Label: "Coverage", Type: FieldTypeText, Required: true, CustomerDataPath: pathPolicyType},
				{ID: "effectiveDate", Label: "Effective Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathStartDate},
				{ID: "expirationDate", Label: "Expiration Date", Type: FieldTypeDate, Required: true, CustomerDataPath: pathEndDate},
				{ID: "certificateHolder", Label: "Certificate Holder", Type: FieldTypeText, Required: true, Placeholder: "Lender or landlord name"},
				{ID: "additionalInsured", Label: "Holder Named as Additional Insured", Type: FieldTypeCheckbox},
			},
		},
	}
}
