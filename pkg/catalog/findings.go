package catalog

var findingsByClass = map[DocumentClass][]Finding{
	ClassNDA: {
		{
			ID:              "nda-1",
			Severity:        SeverityHigh,
			Description:     "Undefined confidentiality period",
			Explanation:     "The agreement lacks a specific timeframe for confidentiality obligations.",
			RemediationText: "Added a standard 5-year confidentiality period with automatic renewal option.",
		},
		{
			ID:              "nda-2",
			Severity:        SeverityHigh,
			Description:     "Missing data breach notification clause",
			Explanation:     "No provisions for handling and reporting data breaches.",
			RemediationText: "Inserted comprehensive data breach notification requirements with 72-hour reporting timeline.",
		},
		{
			ID:              "nda-3",
			Severity:        SeverityHigh,
			Description:     "Insufficient IP protection measures",
			Explanation:     "Intellectual property safeguards are not adequately defined.",
			RemediationText: "Added detailed IP protection protocols and ownership clarifications.",
		},
		{
			ID:              "nda-4",
			Severity:        SeverityMedium,
			Description:     "Vague confidential information definition",
			Explanation:     "The scope of confidential information needs more specific boundaries.",
			RemediationText: "Enhanced definition with specific categories and examples of confidential information.",
		},
		{
			ID:              "nda-5",
			Severity:        SeverityMedium,
			Description:     "Unclear return/destruction procedures",
			Explanation:     "Procedures for handling confidential materials post-termination are ambiguous.",
			RemediationText: "Added detailed protocol for material return or destruction with verification requirements.",
		},
		{
			ID:              "nda-6",
			Severity:        SeverityMedium,
			Description:     "Missing third-party disclosure terms",
			Explanation:     "No clear guidelines for sharing information with third parties.",
			RemediationText: "Implemented structured third-party disclosure framework with approval process.",
		},
		{
			ID:              "nda-7",
			Severity:        SeverityMedium,
			Description:     "Inadequate employee compliance measures",
			Explanation:     "Employee adherence to NDA terms isn't properly addressed.",
			RemediationText: "Added employee training requirements and compliance monitoring procedures.",
		},
		{
			ID:              "nda-8",
			Severity:        SeverityMedium,
			Description:     "Weak survivorship clause",
			Explanation:     "Post-termination obligations are not clearly defined.",
			RemediationText: "Strengthened survivorship clause with specific post-termination requirements.",
		},
		{
			ID:              "nda-9",
			Severity:        SeverityLow,
			Description:     "Missing contact information",
			Explanation:     "Key contact points for notices are not specified.",
			RemediationText: "Added designated contact information for both parties.",
		},
		{
			ID:              "nda-10",
			Severity:        SeverityLow,
			Description:     "Unclear jurisdiction definition",
			Explanation:     "Governing law and jurisdiction are not explicitly stated.",
			RemediationText: "Specified applicable law and jurisdiction for dispute resolution.",
		},
		{
			ID:              "nda-11",
			Severity:        SeverityLow,
			Description:     "Incomplete signature requirements",
			Explanation:     "Document execution requirements are not fully detailed.",
			RemediationText: "Added clear signature and execution requirements including digital signatures.",
		},
		{
			ID:              "nda-12",
			Severity:        SeverityHigh,
			Description:     "Missing trade secret identification",
			Explanation:     "No process for marking or identifying trade secrets.",
			RemediationText: "Implemented clear trade secret marking and identification procedures.",
		},
		{
			ID:              "nda-13",
			Severity:        SeverityMedium,
			Description:     "Insufficient audit rights",
			Explanation:     "Limited ability to verify compliance with agreement terms.",
			RemediationText: "Added comprehensive audit rights and procedures.",
		},
		{
			ID:              "nda-14",
			Severity:        SeverityLow,
			Description:     "Ambiguous notice period",
			Explanation:     "Timeline for required notices is not clearly defined.",
			RemediationText: "Specified notice periods and acceptable delivery methods.",
		},
		{
			ID:              "nda-15",
			Severity:        SeverityHigh,
			Description:     "Weak remedies clause",
			Explanation:     "Available remedies for breach are not comprehensively outlined.",
			RemediationText: "Enhanced remedies clause with specific enforcement mechanisms.",
		},
	},
	ClassContract: {
		{
			ID:              "contract-1",
			Severity:        SeverityHigh,
			Description:     "Inadequate liability cap",
			Explanation:     "The liability limitation is disproportionate to contract value.",
			RemediationText: "Adjusted liability cap to standard 12-month fee equivalent.",
		},
		{
			ID:              "contract-2",
			Severity:        SeverityHigh,
			Description:     "Missing service levels",
			Explanation:     "No defined performance metrics or standards.",
			RemediationText: "Added comprehensive SLA with specific performance metrics.",
		},
		{
			ID:              "contract-3",
			Severity:        SeverityHigh,
			Description:     "Weak termination rights",
			Explanation:     "Termination conditions are not clearly defined.",
			RemediationText: "Added detailed termination triggers and procedures.",
		},
		{
			ID:              "contract-4",
			Severity:        SeverityMedium,
			Description:     "Unclear payment terms",
			Explanation:     "Payment schedule and conditions need clarification.",
			RemediationText: "Specified payment timeline and late payment consequences.",
		},
		{
			ID:              "contract-5",
			Severity:        SeverityMedium,
			Description:     "Incomplete force majeure",
			Explanation:     "Force majeure events not comprehensively covered.",
			RemediationText: "Updated force majeure clause with modern contingencies.",
		},
		{
			ID:              "contract-6",
			Severity:        SeverityMedium,
			Description:     "Missing change control",
			Explanation:     "No formal process for contract modifications.",
			RemediationText: "Implemented structured change management procedures.",
		},
		{
			ID:              "contract-7",
			Severity:        SeverityHigh,
			Description:     "Inadequate data protection",
			Explanation:     "Data handling requirements not sufficiently detailed.",
			RemediationText: "Added comprehensive data protection and privacy measures.",
		},
		{
			ID:              "contract-8",
			Severity:        SeverityMedium,
			Description:     "Vague acceptance criteria",
			Explanation:     "Deliverable acceptance process needs clarification.",
			RemediationText: "Defined clear acceptance criteria and testing procedures.",
		},
		{
			ID:              "contract-9",
			Severity:        SeverityLow,
			Description:     "Missing escalation procedure",
			Explanation:     "No clear path for dispute resolution.",
			RemediationText: "Added structured escalation and resolution process.",
		},
		{
			ID:              "contract-10",
			Severity:        SeverityLow,
			Description:     "Unclear warranty terms",
			Explanation:     "Warranty coverage and duration not specified.",
			RemediationText: "Added detailed warranty terms and conditions.",
		},
		{
			ID:              "contract-11",
			Severity:        SeverityHigh,
			Description:     "Insufficient IP rights",
			Explanation:     "Intellectual property ownership not clearly defined.",
			RemediationText: "Clarified IP ownership and usage rights.",
		},
		{
			ID:              "contract-12",
			Severity:        SeverityMedium,
			Description:     "Missing insurance requirements",
			Explanation:     "Required insurance coverage not specified.",
			RemediationText: "Added detailed insurance requirements and limits.",
		},
		{
			ID:              "contract-13",
			Severity:        SeverityLow,
			Description:     "Incomplete notice provisions",
			Explanation:     "Notice requirements need more detail.",
			RemediationText: "Enhanced notice provisions with specific requirements.",
		},
		{
			ID:              "contract-14",
			Severity:        SeverityMedium,
			Description:     "Weak confidentiality terms",
			Explanation:     "Confidentiality obligations need strengthening.",
			RemediationText: "Enhanced confidentiality provisions and safeguards.",
		},
		{
			ID:              "contract-15",
			Severity:        SeverityHigh,
			Description:     "Missing compliance requirements",
			Explanation:     "Regulatory compliance obligations not specified.",
			RemediationText: "Added comprehensive compliance requirements.",
		},
	},
	ClassPolicy: {
		{
			ID:              "policy-1",
			Severity:        SeverityHigh,
			Description:     "Outdated GDPR compliance",
			Explanation:     "Privacy policy lacks current GDPR requirements.",
			RemediationText: "Updated with latest GDPR compliance measures and user rights.",
		},
		{
			ID:              "policy-2",
			Severity:        SeverityHigh,
			Description:     "Missing CCPA provisions",
			Explanation:     "California privacy requirements not addressed.",
			RemediationText: "Added CCPA-specific provisions and consumer rights.",
		},
		{
			ID:              "policy-3",
			Severity:        SeverityHigh,
			Description:     "Incomplete data collection disclosure",
			Explanation:     "Data collection practices not fully transparent.",
			RemediationText: "Enhanced data collection disclosure with specific details.",
		},
		{
			ID:              "policy-4",
			Severity:        SeverityMedium,
			Description:     "Vague cookie policy",
			Explanation:     "Cookie usage and purposes need clarification.",
			RemediationText: "Added detailed cookie classification and purposes.",
		},
		{
			ID:              "policy-5",
			Severity:        SeverityMedium,
			Description:     "Unclear data retention",
			Explanation:     "Data retention periods not specified.",
			RemediationText: "Added specific data retention timeframes and procedures.",
		},
		{
			ID:              "policy-6",
			Severity:        SeverityMedium,
			Description:     "Missing breach notification",
			Explanation:     "Data breach notification process not outlined.",
			RemediationText: "Added comprehensive breach notification procedures.",
		},
		{
			ID:              "policy-7",
			Severity:        SeverityHigh,
			Description:     "Insufficient consent mechanisms",
			Explanation:     "User consent collection needs improvement.",
			RemediationText: "Implemented robust consent collection and management.",
		},
		{
			ID:              "policy-8",
			Severity:        SeverityMedium,
			Description:     "Weak cross-border transfer",
			Explanation:     "International data transfer safeguards inadequate.",
			RemediationText: "Enhanced international data transfer provisions.",
		},
		{
			ID:              "policy-9",
			Severity:        SeverityLow,
			Description:     "Missing contact details",
			Explanation:     "Privacy contact information not provided.",
			RemediationText: "Added complete privacy contact information.",
		},
		{
			ID:              "policy-10",
			Severity:        SeverityLow,
			Description:     "Unclear complaint procedure",
			Explanation:     "User complaint process needs clarification.",
			RemediationText: "Added detailed complaint handling procedure.",
		},
		{
			ID:              "policy-11",
			Severity:        SeverityHigh,
			Description:     "Incomplete child privacy",
			Explanation:     "Child data protection measures inadequate.",
			RemediationText: "Enhanced child privacy protection measures.",
		},
		{
			ID:              "policy-12",
			Severity:        SeverityMedium,
			Description:     "Missing vendor management",
			Explanation:     "Third-party data handling not addressed.",
			RemediationText: "Added vendor data handling requirements.",
		},
		{
			ID:              "policy-13",
			Severity:        SeverityLow,
			Description:     "Unclear policy updates",
			Explanation:     "Policy update notification process not defined.",
			RemediationText: "Added clear policy update procedures.",
		},
		{
			ID:              "policy-14",
			Severity:        SeverityMedium,
			Description:     "Weak security measures",
			Explanation:     "Data security measures need enhancement.",
			RemediationText: "Strengthened data security provisions.",
		},
		{
			ID:              "policy-15",
			Severity:        SeverityHigh,
			Description:     "Missing rights exercise",
			Explanation:     "User rights exercise process unclear.",
			RemediationText: "Added detailed user rights exercise procedures.",
		},
	},
}
