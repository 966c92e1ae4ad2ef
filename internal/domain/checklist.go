package domain

import "strings"

// ChecklistSection is one of the four fixed verification categories reviewed
// during business activation.
type ChecklistSection string

const (
	SectionPersonal  ChecklistSection = "personal"
	SectionBusiness  ChecklistSection = "business"
	SectionDocuments ChecklistSection = "documents"
	SectionBanking   ChecklistSection = "banking"
)

// ChecklistSections returns the fixed section set in display order.
func ChecklistSections() []ChecklistSection {
	return []ChecklistSection{SectionPersonal, SectionBusiness, SectionDocuments, SectionBanking}
}

// ChecklistItem is the per-section verification state
type ChecklistItem struct {
	Verified bool   `json:"verified"`
	Comment  string `json:"comment"`
}

// VerificationChecklist tracks section verification during a single business
// review session. It is not persisted past the decision.
type VerificationChecklist struct {
	items map[ChecklistSection]ChecklistItem
}

// NewVerificationChecklist creates a checklist with all sections unverified.
func NewVerificationChecklist() *VerificationChecklist {
	c := &VerificationChecklist{items: make(map[ChecklistSection]ChecklistItem, 4)}
	for _, s := range ChecklistSections() {
		c.items[s] = ChecklistItem{}
	}
	return c
}

// ChecklistFromItems builds a checklist from request state. Keys outside the
// fixed section set are ignored.
func ChecklistFromItems(items map[ChecklistSection]ChecklistItem) *VerificationChecklist {
	c := NewVerificationChecklist()
	for _, s := range ChecklistSections() {
		if item, ok := items[s]; ok {
			c.items[s] = item
		}
	}
	return c
}

func (c *VerificationChecklist) SetVerified(section ChecklistSection, verified bool) {
	if item, ok := c.items[section]; ok {
		item.Verified = verified
		c.items[section] = item
	}
}

func (c *VerificationChecklist) SetComment(section ChecklistSection, comment string) {
	if item, ok := c.items[section]; ok {
		item.Comment = comment
		c.items[section] = item
	}
}

func (c *VerificationChecklist) Item(section ChecklistSection) ChecklistItem {
	return c.items[section]
}

// AllVerified reports whether every section has been verified.
func (c *VerificationChecklist) AllVerified() bool {
	for _, s := range ChecklistSections() {
		if !c.items[s].Verified {
			return false
		}
	}
	return true
}

// Unverified returns the sections still awaiting verification, in fixed order.
func (c *VerificationChecklist) Unverified() []ChecklistSection {
	var missing []ChecklistSection
	for _, s := range ChecklistSections() {
		if !c.items[s].Verified {
			missing = append(missing, s)
		}
	}
	return missing
}

// JoinedComments concatenates the non-empty section comments, newline-joined,
// for use as the decision comment on recheck/reject.
func (c *VerificationChecklist) JoinedComments() string {
	var parts []string
	for _, s := range ChecklistSections() {
		if comment := c.items[s].Comment; comment != "" {
			parts = append(parts, comment)
		}
	}
	return strings.Join(parts, "\n")
}
