package pipeline

// DefaultSystemInstructions is the system prompt supplied to the remediation
// backend when the caller provides none
const DefaultSystemInstructions = "You are an AI model designed to analyze documents for compliance " +
	"with accessibility standards. Your task is to review the following document and rewrite it " +
	"to meet 508 compliance. Respond with a JSON object containing a single field " +
	"\"compliant_content\" whose value is the full remediated document text. Do not wrap the " +
	"JSON in code fences or add any other fields or commentary."

// DefaultUserInstructions is the user prompt template supplied to the
// remediation backend when the caller provides none
const DefaultUserInstructions = "Please analyze the following document for 508 compliance and " +
	"rewrite it to ensure it meets accessibility standards. Focus on text alternatives for " +
	"non-text content, correct tagging, and logical reading order."
