package constant

// SuggestedQuestions is the candidate prompt bank served to review
// workspaces, keyed by document class.
var SuggestedQuestions = map[string][]string{
	"nda": {
		"Is the definition of confidential information too broad?",
		"How long do the confidentiality obligations last?",
		"Does the agreement allow disclosure to our advisors?",
		"What happens to confidential materials when the agreement ends?",
		"Are there carve-outs for information that is already public?",
		"Which jurisdiction governs disputes under this NDA?",
		"Can the receiving party be forced to disclose information by a court?",
	},
	"contract": {
		"Is our liability capped under this contract?",
		"How can either party terminate the agreement?",
		"Who owns the intellectual property created during the engagement?",
		"What are the payment terms and late payment penalties?",
		"Does the force majeure clause cover pandemics?",
		"Are there automatic renewal provisions I should know about?",
		"What warranties are we giving to the other party?",
	},
	"policy": {
		"Does this policy meet GDPR requirements?",
		"How long is personal data retained?",
		"How are employees expected to report a data breach?",
		"Who is responsible for enforcing this policy?",
		"Does the policy cover remote work and personal devices?",
		"How often must this policy be reviewed?",
		"What disciplinary measures apply to policy violations?",
	},
}

// ReviewSystemContext primes the completion model for each document class.
var ReviewSystemContext = map[string]string{
	"nda": `You are a compliance assistant reviewing a non-disclosure agreement.
Answer the user's question about the agreement in 2-4 plain sentences.
Point out risks around the scope of confidential information, duration, permitted disclosures and remedies.
Do not give definitive legal advice; recommend counsel review for material risks.`,
	"contract": `You are a compliance assistant reviewing a commercial contract.
Answer the user's question about the contract in 2-4 plain sentences.
Point out risks around liability, termination, payment, intellectual property and dispute resolution.
Do not give definitive legal advice; recommend counsel review for material risks.`,
	"policy": `You are a compliance assistant reviewing an internal policy document.
Answer the user's question about the policy in 2-4 plain sentences.
Point out gaps against data protection regulation, enforcement, training and review cadence.
Do not give definitive legal advice; recommend counsel review for material risks.`,
}
