package oracle

import (
	"fmt"
	"strings"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
)

// searchPrompt builds the research request for one incomplete conference.
// The prompt pins down the exact JSON keys and the "false" escape hatch so
// the response is machine-checkable.
func searchPrompt(item conferences.WorkItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are tasked with finding information about the conference %q for 2026.\n\n", item.Name)
	b.WriteString("Conference Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", item.Name)
	fmt.Fprintf(&b, "- Category: %s\n", item.Category)
	fmt.Fprintf(&b, "- Region: %s\n\n", item.Region)

	b.WriteString("I need you to search the web and find the following missing information for this conference in 2026:\n")
	b.WriteString(strings.Join(item.MissingNames(), ", "))
	b.WriteString("\n\n")

	b.WriteString(`Please search for:
1. Start Date and End Date (in MM/DD format)
2. Venue/Location (specific venue name and city)
3. Key Speakers (notable speakers or keynote speakers)
4. Expected Attendees (approximate number if available)
5. Current Status (confirmed, tentative, cancelled, etc.)

Return ONLY a JSON object with the found information. Use these exact field names:
- "Start Date": "MM/DD" format
- "End Date": "MM/DD" format
- "Location": "Venue Name, City"
- "Speaker": "Key speaker names"
- "Attendees": "Number or description"
- "Status": "Current status"

If you cannot find information for a specific field, use null for that field.
If you cannot find ANY information about this conference for 2026, return false.

Example response format:
{
    "Start Date": "05/15",
    "End Date": "05/17",
    "Location": "Convention Center, Miami",
    "Speaker": "Vitalik Buterin, CZ",
    "Attendees": "5000+",
    "Status": "Confirmed"
}

`)
	fmt.Fprintf(&b, "Search the web now and provide the information about %q for 2026.", item.Name)

	return b.String()
}

// canaryPrompt is the connectivity-check request. The response must contain
// canaryToken for the check to pass.
const (
	canaryPrompt = "Hello, please respond with 'API test successful'"
	canaryToken  = "successful"
)
