package catalog

// services is the full catalog, grouped by category. Order matters:
// it is the order the wizard presents categories and services in.
var services = []Spec{
	// Company registrations and statutory filings
	{
		Category: "registrations",
		Slug:     "company-registration",
		Name:     "Company Registration (Pty Ltd)",
		RequiredDetails: []Field{
			{Key: "proposed_name_1", Label: "First choice of company name", Required: true},
			{Key: "proposed_name_2", Label: "Second choice of company name", Required: false},
			{Key: "business_activity", Label: "Main business activity", Required: true},
			{Key: "director_count", Label: "Number of directors", Required: true},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
			"proof_of_address",
		},
	},
	{
		Category: "registrations",
		Slug:     "vat-registration",
		Name:     "VAT Registration",
		RequiredDetails: []Field{
			{Key: "company_reg_number", Label: "Company registration number", Required: true},
			{Key: "annual_turnover", Label: "Expected annual turnover", Required: true},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
			"company_registration_certificate",
			"bank_confirmation_letter",
		},
	},
	{
		Category: "registrations",
		Slug:     "trademark-registration",
		Name:     "Trademark Registration",
		RequiredDetails: []Field{
			{Key: "mark_name", Label: "Name or mark to register", Required: true},
			{Key: "goods_services_class", Label: "Goods/services description", Required: true},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
			"logo_artwork",
		},
	},

	// Ongoing compliance
	{
		Category: "compliance",
		Slug:     "annual-returns",
		Name:     "CIPC Annual Returns",
		RequiredDetails: []Field{
			{Key: "company_reg_number", Label: "Company registration number", Required: true},
			{Key: "last_filed_year", Label: "Last year filed", Required: false},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
		},
	},
	{
		Category: "compliance",
		Slug:     "tax-clearance",
		Name:     "Tax Clearance Certificate",
		RequiredDetails: []Field{
			{Key: "tax_reference_number", Label: "SARS tax reference number", Required: true},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
			"proof_of_address",
		},
	},
	{
		Category: "compliance",
		Slug:     "bbbee-affidavit",
		Name:     "B-BBEE Affidavit",
		RequiredDetails: []Field{
			{Key: "company_reg_number", Label: "Company registration number", Required: true},
			{Key: "annual_turnover", Label: "Annual turnover", Required: true},
			{Key: "black_ownership_percent", Label: "Black ownership percentage", Required: true},
		},
		RequiredDocuments: []string{
			"certified_id_copy",
		},
	},

	// Branding and web presence: no supporting documents, the wizard
	// skips the Docs step for these (skip rule B).
	{
		Category: "branding",
		Slug:     "logo-design",
		Name:     "Logo Design",
		RequiredDetails: []Field{
			{Key: "business_name", Label: "Business name as it should appear", Required: true},
			{Key: "style_preference", Label: "Style preference", Required: false},
			{Key: "colour_preference", Label: "Colour preference", Required: false},
		},
		RequiredDocuments: nil,
	},
	{
		Category: "branding",
		Slug:     "website-design",
		Name:     "Website Design",
		RequiredDetails: []Field{
			{Key: "business_name", Label: "Business name", Required: true},
			{Key: "page_count", Label: "Approximate number of pages", Required: true},
			{Key: "has_domain", Label: "Existing domain name, if any", Required: false},
		},
		RequiredDocuments: nil,
	},
	{
		Category: "branding",
		Slug:     "company-profile",
		Name:     "Company Profile Design",
		RequiredDetails: []Field{
			{Key: "business_name", Label: "Business name", Required: true},
			{Key: "services_summary", Label: "Summary of services offered", Required: true},
		},
		RequiredDocuments: nil,
	},

	// Planning
	{
		Category: "planning",
		Slug:     "business-plan",
		Name:     "Business Plan",
		RequiredDetails: []Field{
			{Key: "industry", Label: "Industry", Required: true},
			{Key: "funding_target", Label: "Funding target", Required: true},
			{Key: "plan_purpose", Label: "Purpose of the plan", Required: true},
		},
		RequiredDocuments: nil,
	},
}
