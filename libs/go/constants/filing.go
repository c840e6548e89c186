package constants

// Accounting frameworks
const (
	FrameworkFRS102 = "FRS 102"
	FrameworkFRS105 = "FRS 105"
)

// Registrar form identifiers
const (
	FormAccounts              = "Accounts"
	FormConfirmationStatement = "ConfirmationStatement"
	FormSubmissionStatus      = "GetSubmissionStatus"
)

// Declarant capacities accepted on a tax return
const (
	DeclarantDirector  = "Director"
	DeclarantSecretary = "Company Secretary"
	DeclarantAgent     = "Agent"
)
