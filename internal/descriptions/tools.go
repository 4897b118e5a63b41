package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	PDFAuditFileDescription = `Audit a PDF document for accessibility problems.

**When to use:** Need a quick accessibility assessment of a PDF before deciding whether to remediate it.

**Why it's useful:** Surfaces missing alternative text, low-contrast text candidates, and structural gaps without modifying the document.

**Examples:**
• Pre-remediation check: "Audit annual-report.pdf to see how many images lack alt text"
• Compliance triage: "Audit all contracts before scheduling remediation work"
• Verification: "Audit remediated-output.pdf to confirm issues were addressed"

**Common workflows:**
1. Triage: Audit document → Review counts → Prioritize remediation
2. Verification: Remediate → Audit result → Compare against original
3. Reporting: Audit collection → Aggregate counts → Produce compliance summary

**Best practices:** Run before pdf_remediate_file to understand the scope of work, counts are heuristic and err toward over-reporting.`

	PDFExtractModelDescription = `Extract the structured document model from a PDF.

**When to use:** Need the classified content of a PDF as structured data: headings, paragraphs, list items, images, and tables in reading order.

**Why it's useful:** Turns raw PDF geometry into a typed block model with metadata, so downstream systems can reason about document structure instead of raw text.

**Examples:**
• Structure inspection: "Extract the model from manual.pdf to see how its sections are organized"
• Data feeding: "Get the block model of invoice.pdf for a downstream tagging system"
• Debugging: "Inspect why a heading in report.pdf was classified as a paragraph"

**Common workflows:**
1. Inspection: Extract model → Review block kinds → Adjust source document
2. Integration: Extract model → Serialize to JSON → Feed downstream pipeline
3. Audit support: Extract model → Cross-check against audit counts

**Best practices:** Blocks are ordered by page then position, metadata falls back to "Untitled"/"Unknown" when the document omits it.`

	PDFRemediateFileDescription = `Run the full accessibility remediation pipeline on a PDF.

**When to use:** Need a 508-compliant rewrite of a PDF document written out as an accessible Word document.

**Why it's useful:** Combines extraction, classification, auditing, and an AI rewriting pass into one operation, producing a remediated document plus an audit report.

**Examples:**
• Full remediation: "Remediate legacy-manual.pdf and write the result to manual-accessible.docx"
• Batch work: "Remediate each PDF in /intake/ into /remediated/"
• Review flow: "Remediate draft.pdf and review the rewritten content before publishing"

**Common workflows:**
1. Remediation: Run pipeline → Review output document → Publish
2. Partial recovery: Run pipeline → Backend failed → Use returned model and report anyway
3. Quality loop: Remediate → Audit output → Iterate on source document

**Best practices:** Extraction failures abort the run, but remediation-stage failures still return the model, audit report, and rendered text.`

	PDFServerInfoDescription = `Get real-time server status, available tools, and system capabilities.

**When to use:** Starting work with the remediation server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides complete overview of server capabilities, current configuration, and directory contents for informed decision-making.

**Examples:**
• System check: "Verify server is ready and all tools are available before batch processing"
• Troubleshooting: "Check server info to diagnose why files aren't being found"
• Capability discovery: "See all available tools and their descriptions for new projects"

**Common workflows:**
1. Session Startup: Check server info → Verify capabilities → Plan processing approach
2. Debugging: Review server status → Check directory paths → Verify tool availability
3. Planning: Review available tools → Choose appropriate methods → Execute workflow

**Best practices:** Run at start of sessions, reports the configured document directory and remediation backend.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"pdf_audit_file":     PDFAuditFileDescription,
	"pdf_extract_model":  PDFExtractModelDescription,
	"pdf_remediate_file": PDFRemediateFileDescription,
	"pdf_server_info":    PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
