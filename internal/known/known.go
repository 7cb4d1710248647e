// =============================================================================
// EDI Parser - Known Document Reference Tables
// =============================================================================
//
// This package holds reference tables of well-known EDI document codes per
// standard, for example "850" (Purchase Order) in ANSI X12 or "INVOIC" in
// EDIFACT. The tables are used by the 'known' command to list and search
// codes; the parser itself never consults them.
//
// Each table is an ordered list of standards, and each standard an ordered
// list of unique codes with their description. Industry-specific X12
// transaction sets carry the industry they belong to.
//
// =============================================================================

package known

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Standard names.
const (
	ANSIX12    = "ANSI X12 (North American Standard)"
	EDIFACT    = "EDIFACT (International Standard)"
	TRADACOMS  = "TRADACOMS (UK Retail Standard)"
	VDA        = "VDA (German Automotive Standard)"
	RosettaNet = "RosettaNet (Technology Industry Standard)"
	Industry   = "Industry-Specific EDI Documents"
)

// ErrUnknownStandard is returned when a standard filter matches no table.
var ErrUnknownStandard = errors.New("invalid standard")

// ErrCodeNotFound is returned when a code search has no match.
var ErrCodeNotFound = errors.New("EDI code not found")

// Document is one known document type.
type Document struct {
	// Code is the document code, e.g. "850" or "ORDERS".
	Code string

	// Description explains what the document is used for.
	Description string

	// Industry groups industry-specific documents, empty otherwise.
	Industry string
}

// Standard is an EDI standard with its known documents.
type Standard struct {
	Name      string
	Documents []Document
}

// Match is the result of a code search.
type Match struct {
	Standard string
	Document Document
}

// Standards returns a fresh copy of all reference tables in display order.
func Standards() []Standard {
	return []Standard{
		{Name: ANSIX12, Documents: []Document{
			{Code: "204", Description: "Motor Carrier Load Tender - A transportation order for shipping goods"},
			{Code: "810", Description: "Invoice - Used for sending billing information"},
			{Code: "820", Description: "Payment Order/Remittance Advice - Communicates payment details from buyer to seller"},
			{Code: "834", Description: "Benefit Enrollment and Maintenance - For exchanging enrollment information in health insurance plans"},
			{Code: "837", Description: "Healthcare Claim - Used for submitting healthcare claims electronically"},
			{Code: "846", Description: "Inventory Inquiry/Advice - Provides details about stock availability"},
			{Code: "850", Description: "Purchase Order (PO) - Used to request products or services"},
			{Code: "855", Description: "Purchase Order Acknowledgment - Confirms receipt and acceptance of a purchase order"},
			{Code: "856", Description: "Advance Shipping Notice (ASN) - Provides shipment details to the recipient before delivery"},
			{Code: "867", Description: "Product Transfer and Resale Report - Tracks resales of products through distribution channels"},
			{Code: "997", Description: "Functional Acknowledgment - Confirms receipt of an EDI transaction"},
		}},
		{Name: EDIFACT, Documents: []Document{
			{Code: "DESADV", Description: "Dispatch Advice - Provides shipment details (like ASN in X12)"},
			{Code: "IFCSUM", Description: "International Forwarding and Consolidation Summary - Used in logistics for shipment consolidation"},
			{Code: "INVOIC", Description: "Invoice - Used for billing and invoicing globally"},
			{Code: "ORDERS", Description: "Purchase Order - Used to order goods or services internationally"},
			{Code: "ORDRSP", Description: "Order Response - Communicates acceptance or rejection of a purchase order"},
			{Code: "PAYMUL", Description: "Multiple Payment Order - Handles multiple payments in financial transactions"},
			{Code: "PRICAT", Description: "Price/Sales Catalog - Contains pricing and product information"},
			{Code: "RECADV", Description: "Receiving Advice - Notifies the sender of the goods that they were received"},
		}},
		{Name: TRADACOMS, Documents: []Document{
			{Code: "DELHDR", Description: "Delivery Header - Provides delivery instructions for an order"},
			{Code: "INVFIL", Description: "Invoice File - Used for billing in the UK retail sector"},
			{Code: "ORDHDR", Description: "Order Header - The header of a purchase order document"},
		}},
		{Name: VDA, Documents: []Document{
			{Code: "4905", Description: "Delivery Schedule - Communicates delivery schedules in automotive manufacturing"},
			{Code: "4913", Description: "Invoice - Used for billing in the automotive industry"},
		}},
		{Name: RosettaNet, Documents: []Document{
			{Code: "3A4", Description: "Purchase Order - Used for ordering goods in the high-tech industry"},
			{Code: "4B2", Description: "Advance Shipment Notification - Communicates shipment details in the tech supply chain"},
		}},
		{Name: Industry, Documents: []Document{
			{Code: "852", Industry: "Retail", Description: "Product Activity Data - Provides information about inventory movement and sales"},
			{Code: "214", Industry: "Transportation & Logistics", Description: "Transportation Carrier Shipment Status Message - Provides shipment updates in real-time"},
			{Code: "210", Industry: "Transportation & Logistics", Description: "Motor Carrier Freight Details and Invoice - Used for billing in the transportation industry"},
			{Code: "270", Industry: "Healthcare", Description: "Healthcare Eligibility Inquiry - Verifies patient insurance coverage"},
			{Code: "271", Industry: "Healthcare", Description: "Healthcare Eligibility Response - Responds to the eligibility inquiry"},
			{Code: "821", Industry: "Financial Services", Description: "Financial Information Reporting - For reporting bank account summaries and balances"},
			{Code: "823", Industry: "Financial Services", Description: "Lockbox - Reports payments received through a lockbox service"},
		}},
	}
}

// StandardNames returns the names of all standards in display order.
func StandardNames() []string {
	standards := Standards()
	names := make([]string, len(standards))
	for i, s := range standards {
		names[i] = s.Name
	}
	return names
}

// Filter returns the tables restricted to the named standard. An empty name
// returns every table. The name matches either the full table name or its
// short form before the parenthesis ("EDIFACT", "ansi x12"), ignoring case.
func Filter(name string) ([]Standard, error) {
	standards := Standards()
	name = strings.TrimSpace(name)
	if name == "" {
		return standards, nil
	}

	for _, s := range standards {
		if strings.EqualFold(s.Name, name) || strings.EqualFold(shortName(s.Name), name) {
			return []Standard{s}, nil
		}
	}

	return nil, fmt.Errorf("%w. Must be one of: %s", ErrUnknownStandard, strings.Join(StandardNames(), ", "))
}

// shortName returns the part of a table name before " (".
func shortName(name string) string {
	if i := strings.Index(name, " ("); i >= 0 {
		return name[:i]
	}
	return name
}

// Search looks up code case-insensitively across all standards and returns
// the first match in display order.
func Search(code string) (Match, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	for _, s := range Standards() {
		for _, doc := range s.Documents {
			if doc.Code == code {
				return Match{Standard: s.Name, Document: doc}, nil
			}
		}
	}

	return Match{}, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
}

// SortedDocuments returns the documents of s with numeric codes first in
// numeric order, followed by the remaining codes alphabetically.
func SortedDocuments(s Standard) []Document {
	docs := make([]Document, len(s.Documents))
	copy(docs, s.Documents)

	sort.SliceStable(docs, func(i, j int) bool {
		ni, errI := strconv.Atoi(docs[i].Code)
		nj, errJ := strconv.Atoi(docs[j].Code)

		switch {
		case errI == nil && errJ == nil:
			if ni != nj {
				return ni < nj
			}
			return docs[i].Code < docs[j].Code
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return docs[i].Code < docs[j].Code
		}
	})

	return docs
}

// Industries returns the distinct industry names of s in order of first
// appearance.
func Industries(s Standard) []string {
	var industries []string
	seen := make(map[string]bool)
	for _, doc := range s.Documents {
		if doc.Industry == "" || seen[doc.Industry] {
			continue
		}
		seen[doc.Industry] = true
		industries = append(industries, doc.Industry)
	}
	return industries
}
